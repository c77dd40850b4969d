package service

import (
	"context"
	"fmt"
	"log/slog"

	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"
	"docshare/internal/sharing"
)

type shareService struct {
	folders   repositories.FolderBackend
	documents repositories.DocumentBackend
	directory repositories.DirectoryBackend
	logger    *slog.Logger
}

// NewShareService creates the sharing command layer
func NewShareService(
	folders repositories.FolderBackend,
	documents repositories.DocumentBackend,
	directory repositories.DirectoryBackend,
	logger *slog.Logger,
) services.ShareService {
	return &shareService{
		folders:   folders,
		documents: documents,
		directory: directory,
		logger:    logger,
	}
}

// GetFolderDepartments returns the departments a folder is shared with
func (s *shareService) GetFolderDepartments(ctx context.Context, viewer *models.Viewer, folderID string) (*sharing.DepartmentShare, error) {
	folder, err := s.folders.GetFolder(ctx, viewer.Token, folderID)
	if err != nil {
		return nil, err
	}
	share := sharing.FolderDepartments(folder)
	return &share, nil
}

// ShareFolderWithDepartments replaces the folder's department set and returns
// the set the backend now holds
func (s *shareService) ShareFolderWithDepartments(ctx context.Context, viewer *models.Viewer, folderID string, req *sharing.DepartmentShare) (*sharing.DepartmentShare, error) {
	departments := sharing.Dedupe(req.Departments)

	if _, err := s.folders.ShareFolderWithDepartments(ctx, viewer.Token, folderID, departments); err != nil {
		s.logger.Warn("share folder with departments failed",
			"folder_id", folderID,
			"user_id", viewer.UserID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("folder shared with departments",
		"folder_id", folderID,
		"user_id", viewer.UserID,
		"department_count", len(departments),
	)

	return s.GetFolderDepartments(ctx, viewer, folderID)
}

// GetFolderUsers returns the users a folder is shared with
func (s *shareService) GetFolderUsers(ctx context.Context, viewer *models.Viewer, folderID string) (*sharing.UserShare, error) {
	folder, err := s.folders.GetFolder(ctx, viewer.Token, folderID)
	if err != nil {
		return nil, err
	}
	share := sharing.FolderUsers(folder)
	return &share, nil
}

// ShareFolderWithUsers replaces the folder's user set
func (s *shareService) ShareFolderWithUsers(ctx context.Context, viewer *models.Viewer, folderID string, req *sharing.UserShare) (*sharing.UserShare, error) {
	userIDs := sharing.Dedupe(req.UserIDs)

	if _, err := s.folders.ShareFolderWithUsers(ctx, viewer.Token, folderID, userIDs); err != nil {
		s.logger.Warn("share folder with users failed",
			"folder_id", folderID,
			"user_id", viewer.UserID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("folder shared with users",
		"folder_id", folderID,
		"user_id", viewer.UserID,
		"share_count", len(userIDs),
	)

	return s.GetFolderUsers(ctx, viewer, folderID)
}

// GetDocumentShare returns the document's sharing as the dialog should show it
func (s *shareService) GetDocumentShare(ctx context.Context, viewer *models.Viewer, documentID string) (*sharing.DocumentShare, error) {
	doc, err := s.documents.GetDocument(ctx, viewer.Token, documentID)
	if err != nil {
		return nil, err
	}

	selection, dropped := sharing.FromDocument(doc)
	if dropped > 0 {
		s.logger.Warn("document permissions inconsistent with shares",
			"document_id", documentID,
			"dropped_entries", dropped,
		)
	}

	share := selection.Snapshot()
	return &share, nil
}

// ShareDocument replaces the document's shares and permission triple
func (s *shareService) ShareDocument(ctx context.Context, viewer *models.Viewer, documentID string, req *sharing.DocumentShare) (*sharing.DocumentShare, error) {
	selection, err := sharing.FromRequest(*req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.documents.ShareDocument(ctx, viewer.Token, documentID, selection.UserIDs(), selection.Permissions()); err != nil {
		s.logger.Warn("share document failed",
			"document_id", documentID,
			"user_id", viewer.UserID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("document shared",
		"document_id", documentID,
		"user_id", viewer.UserID,
		"share_count", len(selection.UserIDs()),
	)

	return s.GetDocumentShare(ctx, viewer, documentID)
}

// ListUsers lists the user directory
func (s *shareService) ListUsers(ctx context.Context, viewer *models.Viewer) ([]models.User, error) {
	return s.directory.ListUsers(ctx, viewer.Token)
}

// Candidates lists everyone except the owner
func (s *shareService) Candidates(ctx context.Context, viewer *models.Viewer, ownerID string) ([]models.User, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}

	users, err := s.directory.ListUsers(ctx, viewer.Token)
	if err != nil {
		return nil, err
	}
	return sharing.Candidates(users, ownerID), nil
}
