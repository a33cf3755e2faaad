package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/models"
	"github.com/fxdesk/exchange_system/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProviderRepository implements the repositories.ProviderRepositoryFacade
// interface using pgxpool. Priority uniqueness among active rows is an
// application invariant, not a schema constraint: the batched shifts inside
// UpdatePriority pass through states a per-row unique index would reject.
type PgxProviderRepository struct {
	BaseRepository
}

// NewPgxProviderRepository creates a new PgxProviderRepository.
func NewPgxProviderRepository(db *pgxpool.Pool) *PgxProviderRepository {
	return &PgxProviderRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const providerColumns = `provider_id, name, priority, active, current_rates_url, historical_rates_url, adapter_ref, last_failure`

func scanProvider(row pgx.Row) (*models.Provider, error) {
	var m models.Provider
	err := row.Scan(
		&m.ProviderID, &m.Name, &m.Priority, &m.Active,
		&m.CurrentRatesURL, &m.HistoricalRatesURL, &m.AdapterRef, &m.LastFailure,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListActive retrieves all active providers ordered by ascending priority.
func (r *PgxProviderRepository) ListActive(ctx context.Context) ([]domain.Provider, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM providers
		WHERE active
		ORDER BY priority ASC;`, providerColumns)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to list active providers", err)
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		m, err := scanProvider(rows)
		if err != nil {
			return nil, storeErr("failed to scan provider row", err)
		}
		providers = append(providers, mapping.ToDomainProvider(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to read provider rows", err)
	}
	return providers, nil
}

// FindActiveByID retrieves an active provider by ID.
func (r *PgxProviderRepository) FindActiveByID(ctx context.Context, providerID string) (*domain.Provider, error) {
	query := fmt.Sprintf(`SELECT %s FROM providers WHERE provider_id = $1 AND active;`, providerColumns)

	m, err := scanProvider(r.Pool.QueryRow(ctx, query, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: provider %s not found or inactive", apperrors.ErrNotFound, providerID)
		}
		return nil, storeErr("failed to find provider", err)
	}
	p := mapping.ToDomainProvider(*m)
	return &p, nil
}

// UpdatePriority moves the provider to newPriority, shifting every active
// provider in between by one so the permutation stays dense. All shifts and
// the final write happen in one transaction.
func (r *PgxProviderRepository) UpdatePriority(ctx context.Context, providerID string, newPriority int) (*domain.Provider, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	lockQuery := fmt.Sprintf(`SELECT %s FROM providers WHERE provider_id = $1 AND active FOR UPDATE;`, providerColumns)
	m, err := scanProvider(tx.QueryRow(ctx, lockQuery, providerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: provider %s not found or inactive", apperrors.ErrNotFound, providerID)
		}
		return nil, storeErr("failed to lock provider row", err)
	}
	currentPriority := m.Priority

	var activeCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM providers WHERE active;`).Scan(&activeCount); err != nil {
		return nil, storeErr("failed to count active providers", err)
	}
	if newPriority < 1 || newPriority > activeCount {
		return nil, fmt.Errorf("%w: %d must be between 1 and %d", apperrors.ErrInvalidPriority, newPriority, activeCount)
	}

	if currentPriority == newPriority {
		p := mapping.ToDomainProvider(*m)
		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &p, nil
	}

	if newPriority < currentPriority {
		// Moving to a higher rank: everyone in [new, current) steps down one
		// rank (priority += 1).
		_, err = tx.Exec(ctx, `
			UPDATE providers
			SET priority = priority + 1
			WHERE active AND priority >= $1 AND priority < $2;`,
			newPriority, currentPriority)
	} else {
		// Moving to a lower rank: everyone in (current, new] steps up one
		// rank (priority -= 1).
		_, err = tx.Exec(ctx, `
			UPDATE providers
			SET priority = priority - 1
			WHERE active AND priority > $1 AND priority <= $2;`,
			currentPriority, newPriority)
	}
	if err != nil {
		return nil, storeErr("failed to shift provider priorities", err)
	}

	updated, err := scanProvider(tx.QueryRow(ctx, fmt.Sprintf(`
		UPDATE providers
		SET priority = $2
		WHERE provider_id = $1
		RETURNING %s;`, providerColumns),
		providerID, newPriority))
	if err != nil {
		return nil, storeErr("failed to update provider priority", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	p := mapping.ToDomainProvider(*updated)
	return &p, nil
}

// ReorderPriorities rewrites the active providers' priorities as 1..N in
// their current ascending-priority order. Idempotent.
func (r *PgxProviderRepository) ReorderPriorities(ctx context.Context) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	rows, err := tx.Query(ctx, `SELECT provider_id FROM providers WHERE active ORDER BY priority ASC FOR UPDATE;`)
	if err != nil {
		return storeErr("failed to lock active providers", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return storeErr("failed to scan provider id", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storeErr("failed to read provider ids", err)
	}

	for index, id := range ids {
		if _, err := tx.Exec(ctx, `UPDATE providers SET priority = $2 WHERE provider_id = $1;`, id, index+1); err != nil {
			return storeErr("failed to rewrite provider priority", err)
		}
	}

	return r.Commit(ctx, tx)
}

// MarkFailure records the time of the provider's most recent failure.
func (r *PgxProviderRepository) MarkFailure(ctx context.Context, providerID string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE providers SET last_failure = $2 WHERE provider_id = $1;`, providerID, at)
	if err != nil {
		return storeErr("failed to mark provider failure", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: provider %s", apperrors.ErrNotFound, providerID)
	}
	return nil
}
