package providers

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
)

// rateBounds is the plausible per-currency range the simulation draws from.
type rateBounds struct {
	low, high float64
}

var mockBounds = map[string]rateBounds{
	domain.CurrencyUSD: {1.08, 1.15},
	domain.CurrencyCHF: {0.94, 1.00},
	domain.CurrencyGBP: {0.80, 0.88},
}

// MockAdapter simulates an exchange-rate provider without any network I/O.
// Every call succeeds with randomized rates inside fixed plausible ranges,
// which makes it usable both in tests and as a last-resort fallback source.
type MockAdapter struct {
	provider domain.Provider

	mu  sync.Mutex
	rng *rand.Rand
}

// MockFactory returns a registry factory building MockAdapter instances.
// The credential argument is ignored; the simulation needs no key.
func MockFactory() Factory {
	return func(provider domain.Provider, _ string) (ports.RateProviderAdapter, error) {
		return &MockAdapter{
			provider: provider,
			rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		}, nil
	}
}

// FetchRates returns simulated rates for the requested day (or today when
// date is nil), rounded to the canonical six fractional digits.
func (a *MockAdapter) FetchRates(_ context.Context, _ string, date *time.Time) (*dto.ProviderRates, error) {
	now := time.Now().UTC()
	simulatedDate := now.Truncate(24 * time.Hour)
	if date != nil {
		simulatedDate = *date
	}

	rates := make(map[string]decimal.Decimal, len(domain.SupportedCurrencies))
	a.mu.Lock()
	for _, symbol := range domain.SupportedCurrencies {
		bounds := mockBounds[symbol]
		value := bounds.low + a.rng.Float64()*(bounds.high-bounds.low)
		rates[symbol] = decimal.NewFromFloat(value).Round(domain.RateScale)
	}
	a.mu.Unlock()

	return &dto.ProviderRates{
		Timestamp: now.Unix(),
		Date:      simulatedDate,
		Base:      domain.BaseCurrency,
		Rates:     rates,
	}, nil
}
