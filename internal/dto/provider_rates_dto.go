package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderRates is the uniform payload every provider adapter returns: the
// EUR-based rates for one calendar date, filtered down to the supported
// currency set. A currency the upstream did not quote is simply absent from
// Rates, never an error by itself.
type ProviderRates struct {
	Timestamp int64                      `json:"timestamp"`
	Date      time.Time                  `json:"date"`
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// HasAll reports whether every one of the given currency codes is present.
func (p ProviderRates) HasAll(codes []string) bool {
	for _, code := range codes {
		if _, ok := p.Rates[code]; !ok {
			return false
		}
	}
	return true
}

// HistoricalRate is one element of a resolved historical series: the
// EUR-based rates known for a single valuation date.
type HistoricalRate struct {
	ValuationDate time.Time                  `json:"valuationDate"`
	Rates         map[string]decimal.Decimal `json:"rates"`
}
