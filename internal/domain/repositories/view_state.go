package repositories

import (
	"context"

	"docshare/internal/domain/models"
)

// ViewStateRepository persists per-user view state
type ViewStateRepository interface {
	// GetByUserID returns nil (not an error) when the user has no saved state
	GetByUserID(ctx context.Context, userID string) (*models.ViewState, error)

	// GetByUserIDForUpdate is GetByUserID with the row locked for the current transaction
	GetByUserIDForUpdate(ctx context.Context, userID string) (*models.ViewState, error)

	// Upsert creates or replaces the user's state
	Upsert(ctx context.Context, state *models.ViewState) error
}
