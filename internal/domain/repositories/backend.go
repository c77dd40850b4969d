package repositories

import (
	"context"

	"docshare/internal/domain/models"
)

// The document backend is the system of record for every entity except view
// state. Each method takes the caller's bearer token explicitly.

// FolderBackend reads and mutates folders
type FolderBackend interface {
	ListFolders(ctx context.Context, token, parent string) ([]models.Folder, error)
	GetFolder(ctx context.Context, token, id string) (*models.Folder, error)
	GetFolderContents(ctx context.Context, token, id string) ([]models.Folder, []models.Document, error)
	CreateFolder(ctx context.Context, token string, req *models.CreateFolderRequest) (*models.Folder, error)
	UpdateFolder(ctx context.Context, token, id string, req *models.UpdateFolderRequest) (*models.Folder, error)
	DeleteFolder(ctx context.Context, token, id string) error

	// ShareFolderWithDepartments replaces the department set wholesale
	ShareFolderWithDepartments(ctx context.Context, token, id string, departments []string) (*models.Folder, error)
	// ShareFolderWithUsers replaces the user set wholesale
	ShareFolderWithUsers(ctx context.Context, token, id string, userIDs []string) (*models.Folder, error)
}

// DocumentBackend reads and mutates documents
type DocumentBackend interface {
	ListDocuments(ctx context.Context, token string, q models.DocumentQuery) ([]models.Document, error)
	GetDocument(ctx context.Context, token, id string) (*models.Document, error)
	StarDocument(ctx context.Context, token, id string, starred bool) (*models.Document, error)
	DeleteDocument(ctx context.Context, token, id string) error

	// ShareDocument replaces the user set and the permission triple wholesale
	ShareDocument(ctx context.Context, token, id string, userIDs []string, perms models.Permissions) (*models.Document, error)

	// UploadDocument streams a multipart upload to the backend
	UploadDocument(ctx context.Context, token string, upload *models.UploadRequest) (*models.Document, error)
	// OpenDocument opens the document's bytes; the caller closes the stream
	OpenDocument(ctx context.Context, token, id string, mode models.FileMode) (*models.FileStream, error)
}

// DirectoryBackend reads users and manages tags
type DirectoryBackend interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	ListTags(ctx context.Context, token string) ([]models.Tag, error)
	CreateTag(ctx context.Context, token string, req *models.TagRequest) (*models.Tag, error)
	UpdateTag(ctx context.Context, token, id string, req *models.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, token, id string) error
}

// AdminBackend manages departments and employees
type AdminBackend interface {
	ListDepartments(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.Department], error)
	CreateDepartment(ctx context.Context, token string, req *models.CreateDepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, token, id string, req *models.UpdateDepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, token, id string) error

	ListEmployees(ctx context.Context, token string, p models.PageRequest) (*models.Page[models.User], error)
	CreateEmployee(ctx context.Context, token string, req *models.CreateEmployeeRequest) (*models.User, error)
	UpdateEmployee(ctx context.Context, token, id string, req *models.UpdateEmployeeRequest) (*models.User, error)
	DeleteEmployee(ctx context.Context, token, id string) error
}
