package repositories

import (
	"context"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
)

// ProviderReader defines read operations for provider records
type ProviderReader interface {
	// ListActive retrieves all active providers ordered by ascending
	// priority (1 first).
	ListActive(ctx context.Context) ([]domain.Provider, error)

	// FindActiveByID retrieves an active provider by its ID. Returns
	// apperrors.ErrNotFound for missing or inactive providers.
	FindActiveByID(ctx context.Context, providerID string) (*domain.Provider, error)
}

// ProviderWriter defines write operations for provider records
type ProviderWriter interface {
	// UpdatePriority moves the provider to newPriority and shifts the
	// priorities in between so that the active set keeps a dense 1..N
	// permutation. The whole move is one atomic transaction. Returns
	// apperrors.ErrNotFound for a missing/inactive provider and
	// apperrors.ErrInvalidPriority when newPriority is outside
	// [1, countActive].
	UpdatePriority(ctx context.Context, providerID string, newPriority int) (*domain.Provider, error)

	// ReorderPriorities rewrites the active providers' priorities as 1..N
	// in their current ascending-priority order. Idempotent; used as a
	// consistency repair after external tampering.
	ReorderPriorities(ctx context.Context) error

	// MarkFailure records the time of the provider's most recent failure.
	MarkFailure(ctx context.Context, providerID string, at time.Time) error
}

// ProviderRepositoryFacade combines all provider repository interfaces
type ProviderRepositoryFacade interface {
	ProviderReader
	ProviderWriter
}
