package ports

import (
	"context"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/dto"
)

// RateProviderAdapter fetches EUR-based rates from one upstream source.
// Implementations must filter the upstream payload down to the supported
// currency set and must fail with *apperrors.ProviderError rather than
// returning partial success silently.
type RateProviderAdapter interface {
	// FetchRates returns the rates for the given calendar date, or the
	// latest available rates when date is nil.
	FetchRates(ctx context.Context, baseCurrency string, date *time.Time) (*dto.ProviderRates, error)
}

// AdapterResolver turns a provider record's symbolic adapter reference into
// a concrete adapter instance. The registry in internal/adapters/providers
// is the production implementation; it is populated once at startup.
type AdapterResolver interface {
	New(provider domain.Provider, apiKey string) (RateProviderAdapter, error)
}
