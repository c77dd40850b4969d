package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"docshare/internal/access"
	"docshare/internal/config"
	"docshare/internal/domain"
	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
	"docshare/internal/domain/services"
	"docshare/internal/sharing"
	"docshare/internal/tree"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folders   repositories.FolderBackend
	viewState services.ViewStateService
	resolver  *access.Resolver
	logger    *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folders repositories.FolderBackend,
	viewState services.ViewStateService,
	resolver *access.Resolver,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folders:   folders,
		viewState: viewState,
		resolver:  resolver,
		logger:    logger,
	}
}

// GetTree composes the visible folder hierarchy from the flat backend list
func (s *folderService) GetTree(ctx context.Context, viewer *models.Viewer, expanded []string) (*services.FolderTree, error) {
	if expanded == nil {
		state, err := s.viewState.GetViewState(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("load view state: %w", err)
		}
		expanded = state.ExpandedFolders
	}

	folders, err := s.folders.ListFolders(ctx, viewer.Token, "")
	if err != nil {
		return nil, err
	}

	nodes := tree.Compose(folders, nil, 0, tree.NewExpansionSet(expanded...))

	s.logger.Debug("folder tree composed",
		"user_id", viewer.UserID,
		"folder_count", len(folders),
		"root_count", len(nodes),
	)

	return &services.FolderTree{Folders: nodes, Expanded: sharing.Dedupe(expanded)}, nil
}

// GetFolder returns a folder with its display flags. Hidden folders are reported as not found.
func (s *folderService) GetFolder(ctx context.Context, viewer *models.Viewer, folderID string) (*services.FolderView, error) {
	folder, err := s.folders.GetFolder(ctx, viewer.Token, folderID)
	if err != nil {
		return nil, err
	}

	decision := s.resolver.Resolve(folder, viewer)
	if decision.Classification == access.Hidden {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return &services.FolderView{Folder: folder, Decision: decision}, nil
}

// GetContents lists a folder, degrading to a restricted view instead of failing
func (s *folderService) GetContents(ctx context.Context, viewer *models.Viewer, folderID string) (*models.FolderContents, error) {
	folder, err := s.folders.GetFolder(ctx, viewer.Token, folderID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return models.RestrictedContents(nil), nil
		}
		return nil, err
	}

	switch access.Classify(folder) {
	case access.Hidden:
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	case access.Locked:
		// contents of locked folders are never fetched
		return models.RestrictedContents(folder), nil
	}

	children, docs, err := s.folders.GetFolderContents(ctx, viewer.Token, folderID)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			s.logger.Debug("folder contents restricted", "folder_id", folderID, "user_id", viewer.UserID)
			return models.RestrictedContents(folder), nil
		}
		return nil, err
	}

	visible := make([]models.Folder, 0, len(children))
	for _, child := range children {
		if access.Classify(&child) != access.Hidden {
			visible = append(visible, child)
		}
	}

	return &models.FolderContents{
		Folder:    folder,
		Folders:   visible,
		Documents: docs,
	}, nil
}

// CreateFolder creates a folder after checking its name
func (s *folderService) CreateFolder(ctx context.Context, viewer *models.Viewer, req *models.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.DepartmentAccess = sharing.Dedupe(req.DepartmentAccess)

	if err := validateFolderName(&req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folders.CreateFolder(ctx, viewer.Token, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"user_id", viewer.UserID,
	)

	return folder, nil
}

// UpdateFolder renames a folder
func (s *folderService) UpdateFolder(ctx context.Context, viewer *models.Viewer, folderID string, req *models.UpdateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.DepartmentAccess != nil {
		req.DepartmentAccess = sharing.Dedupe(req.DepartmentAccess)
	}

	if err := validateFolderName(&req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folders.UpdateFolder(ctx, viewer.Token, folderID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated", "id", folderID, "name", folder.Name, "user_id", viewer.UserID)
	return folder, nil
}

// DeleteFolder deletes a folder; the backend decides whether the caller may
func (s *folderService) DeleteFolder(ctx context.Context, viewer *models.Viewer, folderID string) error {
	if err := s.folders.DeleteFolder(ctx, viewer.Token, folderID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID, "user_id", viewer.UserID)
	return nil
}

func validateFolderName(name *string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
}
