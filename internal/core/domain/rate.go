package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date format used for cache keys and
// provider requests.
const DateLayout = "2006-01-02"

// RateScale is the number of fractional digits stored per rate.
const RateScale = 6

// RateRecord holds the canonical EUR-based exchange rates for one calendar
// date. ValuationDate is the natural key; a refetch for the same date
// overwrites all three rates atomically.
type RateRecord struct {
	ValuationDate time.Time       `json:"valuationDate"`
	CHFRate       decimal.Decimal `json:"chfRate"`
	USDRate       decimal.Decimal `json:"usdRate"`
	GBPRate       decimal.Decimal `json:"gbpRate"`
}

// RateFor returns the record's rate for the given currency code relative to
// the base. The base currency itself is defined as exactly 1 and is not
// stored. The second return value is false for unknown codes.
func (r RateRecord) RateFor(code string) (decimal.Decimal, bool) {
	switch code {
	case BaseCurrency:
		return decimal.NewFromInt(1), true
	case CurrencyCHF:
		return r.CHFRate, true
	case CurrencyUSD:
		return r.USDRate, true
	case CurrencyGBP:
		return r.GBPRate, true
	default:
		return decimal.Decimal{}, false
	}
}

// Rates returns the stored rates keyed by currency code, excluding the base.
func (r RateRecord) Rates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		CurrencyCHF: r.CHFRate,
		CurrencyUSD: r.USDRate,
		CurrencyGBP: r.GBPRate,
	}
}
