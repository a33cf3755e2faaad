package providers_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxdesk/exchange_system/internal/adapters/providers"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) *providers.MockAdapter {
	t.Helper()
	adapter, err := providers.MockFactory()(domain.Provider{ProviderID: "sim", Name: "Simulated", AdapterRef: providers.AdapterMock}, "")
	require.NoError(t, err)
	return adapter.(*providers.MockAdapter)
}

func TestMockAdapterRatesStayInsidePlausibleBounds(t *testing.T) {
	adapter := newMockAdapter(t)
	bounds := map[string][2]string{
		domain.CurrencyUSD: {"1.08", "1.15"},
		domain.CurrencyCHF: {"0.94", "1.00"},
		domain.CurrencyGBP: {"0.80", "0.88"},
	}

	for i := 0; i < 100; i++ {
		rates, err := adapter.FetchRates(context.Background(), domain.BaseCurrency, nil)
		require.NoError(t, err)
		require.True(t, rates.HasAll(domain.SupportedCurrencies))

		for symbol, bound := range bounds {
			rate := rates.Rates[symbol]
			low := decimal.RequireFromString(bound[0])
			high := decimal.RequireFromString(bound[1])
			assert.True(t, rate.GreaterThanOrEqual(low), "%s rate %s below %s", symbol, rate, low)
			assert.True(t, rate.LessThanOrEqual(high), "%s rate %s above %s", symbol, rate, high)
			assert.LessOrEqual(t, int(-rate.Exponent()), domain.RateScale, "%s rate %s has too many fraction digits", symbol, rate)
		}
	}
}

func TestMockAdapterEchoesRequestedDate(t *testing.T) {
	adapter := newMockAdapter(t)
	date, err := time.Parse(domain.DateLayout, "2023-11-04")
	require.NoError(t, err)

	rates, err := adapter.FetchRates(context.Background(), domain.BaseCurrency, &date)

	require.NoError(t, err)
	assert.True(t, rates.Date.Equal(date))
	assert.Equal(t, domain.BaseCurrency, rates.Base)
}

func TestMockAdapterDefaultsToTodayUTC(t *testing.T) {
	adapter := newMockAdapter(t)

	rates, err := adapter.FetchRates(context.Background(), domain.BaseCurrency, nil)

	require.NoError(t, err)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	assert.True(t, rates.Date.Equal(today), "got %s", rates.Date)
}

func TestRegistryResolvesRegisteredRefs(t *testing.T) {
	registry := providers.NewRegistry()
	registry.Register(providers.AdapterMock, providers.MockFactory())

	adapter, err := registry.New(domain.Provider{Name: "Simulated", AdapterRef: providers.AdapterMock}, "")
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}

func TestRegistryRejectsUnknownRef(t *testing.T) {
	registry := providers.NewRegistry()

	_, err := registry.New(domain.Provider{Name: "Mystery", AdapterRef: "telex"}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "telex")
}
