package models

import "time"

// ViewState is the per-user browsing state restored at session start
type ViewState struct {
	UserID          string         `json:"userId"`
	CurrentFolder   *string        `json:"currentFolder"`
	CurrentFilter   DocumentFilter `json:"currentFilter"`
	ExpandedFolders []string       `json:"expandedFolders"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// DefaultViewState is the state of a user who has never browsed
func DefaultViewState(userID string) *ViewState {
	now := time.Now()
	return &ViewState{
		UserID:          userID,
		CurrentFilter:   FilterAll,
		ExpandedFolders: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsExpanded reports whether folderID is in the expansion set
func (v *ViewState) IsExpanded(folderID string) bool {
	for _, id := range v.ExpandedFolders {
		if id == folderID {
			return true
		}
	}
	return false
}

// ToggleExpanded flips folderID's membership in the expansion set
func (v *ViewState) ToggleExpanded(folderID string) {
	for i, id := range v.ExpandedFolders {
		if id == folderID {
			v.ExpandedFolders = append(v.ExpandedFolders[:i], v.ExpandedFolders[i+1:]...)
			return
		}
	}
	v.ExpandedFolders = append(v.ExpandedFolders, folderID)
}

// OptionalFolder tracks tri-state semantics for currentFolder updates.
//   - Present=false: don't change
//   - Present=true, Value=nil: back to root
//   - Present=true, Value=&id: select folder
type OptionalFolder struct {
	Present bool
	Value   *string
}

// UpdateViewStateRequest is a partial update; nil fields are left unchanged
type UpdateViewStateRequest struct {
	CurrentFolder   OptionalFolder
	CurrentFilter   *DocumentFilter `json:"currentFilter"`
	ExpandedFolders []string        `json:"expandedFolders"`
}
