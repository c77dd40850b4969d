package models

import "time"

// Folder is a node in the document hierarchy.
// HasAccess and CanViewContent are computed by the backend; nil means the flag was absent.
type Folder struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ParentID         *string   `json:"parentId"`
	OwnerID          string    `json:"ownerId,omitempty"`
	DepartmentAccess []string  `json:"departmentAccess"`
	SharedWith       []string  `json:"sharedWith"`
	HasAccess        *bool     `json:"hasAccess,omitempty"`
	CanViewContent   *bool     `json:"canViewContent,omitempty"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
}

// Parent returns the parent id, or "" for a root folder
func (f *Folder) Parent() string {
	if f.ParentID == nil {
		return ""
	}
	return *f.ParentID
}

// FolderContents is the listing of a folder the caller may browse.
// Restricted is set when the folder is visible but its contents are withheld.
type FolderContents struct {
	Folder     *Folder    `json:"folder"`
	Folders    []Folder   `json:"folders"`
	Documents  []Document `json:"documents"`
	Restricted bool       `json:"restricted"`
	Message    string     `json:"message,omitempty"`
}

// RestrictedContents builds the empty listing shown for a locked folder
func RestrictedContents(folder *Folder) *FolderContents {
	return &FolderContents{
		Folder:     folder,
		Folders:    []Folder{},
		Documents:  []Document{},
		Restricted: true,
		Message:    "You can see this folder but not its contents",
	}
}

// CreateFolderRequest is the payload for creating a folder
type CreateFolderRequest struct {
	Name             string   `json:"name"`
	ParentID         *string  `json:"parentId,omitempty"`
	DepartmentAccess []string `json:"departmentAccess,omitempty"`
}

// UpdateFolderRequest renames a folder and optionally replaces its department access
type UpdateFolderRequest struct {
	Name             string   `json:"name"`
	DepartmentAccess []string `json:"departmentAccess,omitempty"`
}
