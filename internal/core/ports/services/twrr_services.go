package services

import (
	"context"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/dto"
)

// TWRRSvc computes time-weighted return series from resolved rate history.
type TWRRSvc interface {
	// ComputeSeries derives the period-over-period returns for the target
	// currency from a date-ascending rate series. Any missing or zero rate
	// aborts the whole computation; no partial series is returned.
	ComputeSeries(historicalRates []dto.HistoricalRate, targetCurrency string) ([]domain.TWRRPoint, error)

	// ComputeFromDate resolves the EUR-based history from startDate to
	// today and computes the return series for targetCurrency.
	ComputeFromDate(ctx context.Context, targetCurrency string, startDate time.Time) ([]domain.TWRRPoint, error)
}

// TWRRSvcFacade combines all TWRR service interfaces
type TWRRSvcFacade interface {
	TWRRSvc
}
