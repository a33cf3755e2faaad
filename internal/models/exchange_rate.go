package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the canonical EUR-based rates for one valuation date.
// Note: rates use a precise decimal type, github.com/shopspring/decimal,
// persisted as NUMERIC(18,6).
type ExchangeRate struct {
	ValuationDate time.Time       `json:"valuationDate"` // Natural key, one row per date
	CHFRate       decimal.Decimal `json:"chfRate"`       // EUR -> CHF
	USDRate       decimal.Decimal `json:"usdRate"`       // EUR -> USD
	GBPRate       decimal.Decimal `json:"gbpRate"`       // EUR -> GBP
}
