package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"docshare/internal/domain/models"
	"docshare/internal/domain/repositories"
)

// PostgresViewStateRepository implements the ViewStateRepository interface
type PostgresViewStateRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewViewStateRepository creates a new PostgresViewStateRepository
func NewViewStateRepository(config *RepositoryConfig) repositories.ViewStateRepository {
	return &PostgresViewStateRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUserID retrieves the saved state for a user
func (r *PostgresViewStateRepository) GetByUserID(ctx context.Context, userID string) (*models.ViewState, error) {
	return r.get(ctx, userID, "")
}

// GetByUserIDForUpdate retrieves the saved state and locks the row
func (r *PostgresViewStateRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*models.ViewState, error) {
	return r.get(ctx, userID, "FOR UPDATE")
}

func (r *PostgresViewStateRepository) get(ctx context.Context, userID, lock string) (*models.ViewState, error) {
	query := fmt.Sprintf(`
		SELECT user_id, current_folder, current_filter, expanded_folders, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		%s
	`, r.tables.ViewStates, lock)

	var state models.ViewState
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&state.UserID,
		&state.CurrentFolder,
		&state.CurrentFilter,
		&state.ExpandedFolders,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			// Nothing saved yet - not an error
			return nil, nil
		}
		return nil, fmt.Errorf("get view state: %w", err)
	}

	return &state, nil
}

// Upsert creates or replaces the saved state
func (r *PostgresViewStateRepository) Upsert(ctx context.Context, state *models.ViewState) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, current_folder, current_filter, expanded_folders, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			current_folder = EXCLUDED.current_folder,
			current_filter = EXCLUDED.current_filter,
			expanded_folders = EXCLUDED.expanded_folders,
			updated_at = EXCLUDED.updated_at
		RETURNING user_id, current_folder, current_filter, expanded_folders, created_at, updated_at
	`, r.tables.ViewStates)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		state.UserID,
		state.CurrentFolder,
		string(state.CurrentFilter),
		state.ExpandedFolders,
		state.CreatedAt,
		state.UpdatedAt,
	).Scan(
		&state.UserID,
		&state.CurrentFolder,
		&state.CurrentFilter,
		&state.ExpandedFolders,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert view state: %w", err)
	}

	r.logger.Debug("view state saved", "user_id", state.UserID)
	return nil
}
