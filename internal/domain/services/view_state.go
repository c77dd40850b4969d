package services

import (
	"context"

	"docshare/internal/domain/models"
)

// ViewStateService loads and saves the caller's browsing state.
// Frontends load it once at session start and save on every change.
type ViewStateService interface {
	// GetViewState returns defaults when nothing has been saved
	GetViewState(ctx context.Context, userID string) (*models.ViewState, error)
	UpdateViewState(ctx context.Context, userID string, req *models.UpdateViewStateRequest) (*models.ViewState, error)
	ToggleExpanded(ctx context.Context, userID, folderID string) (*models.ViewState, error)
}
