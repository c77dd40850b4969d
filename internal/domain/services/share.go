package services

import (
	"context"

	"docshare/internal/domain/models"
	"docshare/internal/sharing"
)

// ShareService issues the sharing mutations. Every mutation sends the full
// desired set and returns the selection re-read from the backend.
type ShareService interface {
	GetFolderDepartments(ctx context.Context, viewer *models.Viewer, folderID string) (*sharing.DepartmentShare, error)
	ShareFolderWithDepartments(ctx context.Context, viewer *models.Viewer, folderID string, req *sharing.DepartmentShare) (*sharing.DepartmentShare, error)

	GetFolderUsers(ctx context.Context, viewer *models.Viewer, folderID string) (*sharing.UserShare, error)
	ShareFolderWithUsers(ctx context.Context, viewer *models.Viewer, folderID string, req *sharing.UserShare) (*sharing.UserShare, error)

	GetDocumentShare(ctx context.Context, viewer *models.Viewer, documentID string) (*sharing.DocumentShare, error)
	ShareDocument(ctx context.Context, viewer *models.Viewer, documentID string, req *sharing.DocumentShare) (*sharing.DocumentShare, error)

	// ListUsers lists every user visible to the caller
	ListUsers(ctx context.Context, viewer *models.Viewer) ([]models.User, error)

	// Candidates lists users a resource owned by ownerID can be shared with
	Candidates(ctx context.Context, viewer *models.Viewer, ownerID string) ([]models.User, error)
}
