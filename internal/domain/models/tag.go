package models

import "time"

// Tag groups documents visually; it carries no access semantics
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	OwnerID   string    `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// TagRequest creates or updates a tag
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
