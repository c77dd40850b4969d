package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the gateway's tables if they do not exist.
// Everything else lives in the document backend.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			user_id          TEXT PRIMARY KEY,
			current_folder   TEXT,
			current_filter   TEXT NOT NULL DEFAULT 'all',
			expanded_folders TEXT[] NOT NULL DEFAULT '{}',
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, tables.ViewStates)

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", tables.ViewStates, err)
	}
	return nil
}

// DropSchema removes the gateway's tables
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, tables.ViewStates)); err != nil {
		return fmt.Errorf("drop %s: %w", tables.ViewStates, err)
	}
	return nil
}

// ClearViewStates deletes every saved view state and reports how many rows were removed
func ClearViewStates(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) (int64, error) {
	tag, err := pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, tables.ViewStates))
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", tables.ViewStates, err)
	}
	return tag.RowsAffected(), nil
}
