package upstream

import (
	"context"
	"net/http"
	"net/url"

	"docshare/internal/domain/models"
)

// ListFolders returns folders annotated with access flags.
// An empty parent lists every folder the caller can see.
func (c *Client) ListFolders(ctx context.Context, token, parent string) ([]models.Folder, error) {
	query := url.Values{}
	if parent != "" {
		query.Set("parent", parent)
	}

	var out []wireFolder
	if err := c.do(ctx, token, http.MethodGet, "/folders", query, nil, &out); err != nil {
		return nil, err
	}
	return convert(out, (*wireFolder).model), nil
}

// GetFolder returns one folder
func (c *Client) GetFolder(ctx context.Context, token, id string) (*models.Folder, error) {
	var out wireFolder
	if err := c.do(ctx, token, http.MethodGet, "/folders/"+escape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	f := out.model()
	return &f, nil
}

type folderContents struct {
	Folders   []wireFolder   `json:"folders"`
	Documents []wireDocument `json:"documents"`
}

// GetFolderContents lists a folder's subfolders and documents.
// The backend answers 403 for folders whose contents are restricted.
func (c *Client) GetFolderContents(ctx context.Context, token, id string) ([]models.Folder, []models.Document, error) {
	var out folderContents
	if err := c.do(ctx, token, http.MethodGet, "/folders/"+escape(id)+"/contents", nil, nil, &out); err != nil {
		return nil, nil, err
	}
	return convert(out.Folders, (*wireFolder).model), convert(out.Documents, (*wireDocument).model), nil
}

type createFolderBody struct {
	Name             string   `json:"name"`
	Parent           *string  `json:"parent,omitempty"`
	DepartmentAccess []string `json:"departmentAccess,omitempty"`
}

// CreateFolder creates a folder
func (c *Client) CreateFolder(ctx context.Context, token string, req *models.CreateFolderRequest) (*models.Folder, error) {
	body := createFolderBody{Name: req.Name, Parent: req.ParentID, DepartmentAccess: req.DepartmentAccess}

	var out wireFolder
	if err := c.do(ctx, token, http.MethodPost, "/folders", nil, body, &out); err != nil {
		return nil, err
	}
	f := out.model()
	return &f, nil
}

// UpdateFolder renames a folder and optionally replaces its department access
func (c *Client) UpdateFolder(ctx context.Context, token, id string, req *models.UpdateFolderRequest) (*models.Folder, error) {
	var out wireFolder
	if err := c.do(ctx, token, http.MethodPut, "/folders/"+escape(id), nil, req, &out); err != nil {
		return nil, err
	}
	f := out.model()
	return &f, nil
}

// DeleteFolder deletes a folder
func (c *Client) DeleteFolder(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/folders/"+escape(id), nil, nil, nil)
}

// ShareFolderWithDepartments replaces the folder's department access
func (c *Client) ShareFolderWithDepartments(ctx context.Context, token, id string, departments []string) (*models.Folder, error) {
	body := struct {
		Departments []string `json:"departments"`
	}{Departments: departments}

	var out wireFolder
	if err := c.do(ctx, token, http.MethodPut, "/folders/"+escape(id)+"/share-department", nil, body, &out); err != nil {
		return nil, err
	}
	f := out.model()
	return &f, nil
}

// ShareFolderWithUsers replaces the folder's user shares
func (c *Client) ShareFolderWithUsers(ctx context.Context, token, id string, userIDs []string) (*models.Folder, error) {
	body := struct {
		UserIDs []string `json:"userIds"`
	}{UserIDs: userIDs}

	var out wireFolder
	if err := c.do(ctx, token, http.MethodPut, "/folders/"+escape(id)+"/share", nil, body, &out); err != nil {
		return nil, err
	}
	f := out.model()
	return &f, nil
}
