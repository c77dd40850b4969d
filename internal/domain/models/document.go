package models

import "time"

// Permission is one leg of the read/write/delete triple
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionWrite  Permission = "write"
	PermissionDelete Permission = "delete"
)

// Permissions holds the user ids granted each permission on a document
type Permissions struct {
	Read   []string `json:"read"`
	Write  []string `json:"write"`
	Delete []string `json:"delete"`
}

// Document is an uploaded file.
// SharedWith and Permissions are stored independently by the backend.
type Document struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	OriginalName string      `json:"originalName"`
	MimeType     string      `json:"mimeType"`
	Size         int64       `json:"size"`
	FolderID     *string     `json:"folderId"`
	TagIDs       []string    `json:"tags"`
	OwnerID      string      `json:"ownerId,omitempty"`
	IsStarred    bool        `json:"isStarred"`
	SharedWith   []string    `json:"sharedWith"`
	Permissions  Permissions `json:"permissions"`
	CreatedAt    time.Time   `json:"createdAt,omitzero"`
	UpdatedAt    time.Time   `json:"updatedAt,omitzero"`
}

// DocumentFilter is a sidebar quick filter
type DocumentFilter string

const (
	FilterAll      DocumentFilter = "all"
	FilterStarred  DocumentFilter = "starred"
	FilterShared   DocumentFilter = "shared"
	FilterMyDrives DocumentFilter = "mydrives"
	FilterInvoices DocumentFilter = "invoices"
)

// Valid reports whether f is a known filter
func (f DocumentFilter) Valid() bool {
	switch f {
	case FilterAll, FilterStarred, FilterShared, FilterMyDrives, FilterInvoices:
		return true
	}
	return false
}

// DocumentQuery selects which documents to list
type DocumentQuery struct {
	FolderID string
	Filter   DocumentFilter
	Search   string
}
