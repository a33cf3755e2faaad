package services

import (
	"context"
	"time"

	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
)

// RateResolverSvc orchestrates the tiered cache -> store -> provider-chain
// lookup and persists whatever it fetches.
type RateResolverSvc interface {
	// ResolveCurrent returns today's cross rate from source to target,
	// derived from the latest EUR-based record. Fails with
	// apperrors.ErrRateUnavailable when no rate can be produced.
	ResolveCurrent(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error)

	// ResolveHistorical returns the per-date EUR-based rates inside
	// [from, to], ascending by date. Fails with apperrors.ErrNoProviders
	// or apperrors.ErrAllProvidersFailed when the chain is exhausted.
	ResolveHistorical(ctx context.Context, baseCurrency string, from, to time.Time) ([]dto.HistoricalRate, error)

	// EnsureDailyRates is the external scheduler's entry point: a no-op
	// when today's record already exists, else one fetch-and-store pass.
	EnsureDailyRates(ctx context.Context) error
}

// RateResolverSvcFacade is the full resolver surface consumed by the
// conversion and TWRR services.
type RateResolverSvcFacade interface {
	RateResolverSvc
}
