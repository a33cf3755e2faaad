// Package cachekeys builds the deterministic cache keys used by the rate
// resolver. Keys encode operation kind, currency selector and date (or date
// range) so that distinct logical queries never collide.
package cachekeys

import (
	"fmt"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
)

// CurrentRate keys today's cross rate from source to target.
func CurrentRate(sourceCurrency, targetCurrency string, day time.Time) string {
	return fmt.Sprintf("current_rate:%s:%s:%s",
		sourceCurrency, targetCurrency, day.Format(domain.DateLayout))
}

// HistoricalRates keys the resolved per-date series for base over [from, to].
func HistoricalRates(baseCurrency string, from, to time.Time) string {
	return fmt.Sprintf("historical_rates:%s:%s:%s",
		baseCurrency, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
}
