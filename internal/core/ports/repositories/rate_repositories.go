package repositories

import (
	"context"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateReader defines read operations for canonical daily rate records
type RateReader interface {
	// FindByDate retrieves the rate record for one valuation date.
	// Returns apperrors.ErrNotFound when no record exists for that date.
	FindByDate(ctx context.Context, date time.Time) (*domain.RateRecord, error)

	// FindRange retrieves the rate records inside [from, to], ascending by
	// valuation date. An empty slice means no records; gaps inside the
	// range are not detected here.
	FindRange(ctx context.Context, from, to time.Time) ([]domain.RateRecord, error)

	// FindLatest retrieves the record with the maximum valuation date.
	// Returns apperrors.ErrNotFound on an empty store.
	FindLatest(ctx context.Context) (*domain.RateRecord, error)
}

// RateWriter defines write operations for canonical daily rate records
type RateWriter interface {
	// Upsert writes the three rates for one valuation date atomically,
	// overwriting an existing record for the same date. Write failures
	// propagate wrapping apperrors.ErrStore; they are never swallowed.
	Upsert(ctx context.Context, date time.Time, chf, usd, gbp decimal.Decimal) (*domain.RateRecord, error)
}

// RateRepositoryFacade combines all rate-record repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
