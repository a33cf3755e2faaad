package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TWRRPoint is one period-over-period return in a time-weighted return
// series. ValuationDate is the later day of the consecutive pair that
// produced the return. The series is a derived view and is never persisted.
type TWRRPoint struct {
	ValuationDate time.Time       `json:"valuationDate"`
	Return        decimal.Decimal `json:"twrr"`
}
