package services

import (
	"context"

	"docshare/internal/access"
	"docshare/internal/domain/models"
	"docshare/internal/tree"
)

// FolderView is a folder with its display flags
type FolderView struct {
	*models.Folder
	access.Decision
}

// FolderTree is the composed sidebar hierarchy
type FolderTree struct {
	Folders  []*tree.Node `json:"folders"`
	Expanded []string     `json:"expanded"`
}

// FolderService exposes folder browsing
type FolderService interface {
	// GetTree composes the caller's visible hierarchy. A nil expansion set
	// means the caller's saved view state is used.
	GetTree(ctx context.Context, viewer *models.Viewer, expanded []string) (*FolderTree, error)

	GetFolder(ctx context.Context, viewer *models.Viewer, folderID string) (*FolderView, error)

	// GetContents lists a folder. Locked folders and backend denials yield a
	// restricted, empty listing rather than an error.
	GetContents(ctx context.Context, viewer *models.Viewer, folderID string) (*models.FolderContents, error)

	CreateFolder(ctx context.Context, viewer *models.Viewer, req *models.CreateFolderRequest) (*models.Folder, error)
	UpdateFolder(ctx context.Context, viewer *models.Viewer, folderID string, req *models.UpdateFolderRequest) (*models.Folder, error)
	DeleteFolder(ctx context.Context, viewer *models.Viewer, folderID string) error
}
