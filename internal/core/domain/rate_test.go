package domain_test

import (
	"testing"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForBaseCurrencyIsUnity(t *testing.T) {
	record := domain.RateRecord{ValuationDate: time.Now()}

	rate, ok := record.RateFor(domain.BaseCurrency)

	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestRateForStoredCurrencies(t *testing.T) {
	record := domain.RateRecord{
		CHFRate: decimal.RequireFromString("0.94"),
		USDRate: decimal.RequireFromString("1.03"),
		GBPRate: decimal.RequireFromString("0.83"),
	}

	for code, want := range record.Rates() {
		rate, ok := record.RateFor(code)
		require.True(t, ok, "code %s", code)
		assert.True(t, rate.Equal(want), "code %s", code)
	}

	_, ok := record.RateFor("JPY")
	assert.False(t, ok)
}

func TestIsSupportedCurrencyExcludesBase(t *testing.T) {
	for _, code := range domain.SupportedCurrencies {
		assert.True(t, domain.IsSupportedCurrency(code))
	}
	assert.False(t, domain.IsSupportedCurrency(domain.CurrencyEUR))
	assert.False(t, domain.IsSupportedCurrency("JPY"))
}
