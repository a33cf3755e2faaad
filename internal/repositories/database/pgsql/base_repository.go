package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, storeErr("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return storeErr("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return storeErr("failed to rollback transaction", err)
	}
	return nil
}

// storeErr tags a storage-layer failure so callers can match it with
// errors.Is(err, apperrors.ErrStore).
func storeErr(msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrStore, msg, err)
}
