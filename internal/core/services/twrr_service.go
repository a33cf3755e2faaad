package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	portssvc "github.com/fxdesk/exchange_system/internal/core/ports/services"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
)

// TWRRService computes time-weighted return series from resolved EUR-based
// rate history.
type TWRRService struct {
	resolver portssvc.RateResolverSvcFacade
	logger   *slog.Logger
}

// NewTWRRService creates a new TWRRService.
func NewTWRRService(resolver portssvc.RateResolverSvcFacade, logger *slog.Logger) *TWRRService {
	return &TWRRService{resolver: resolver, logger: logger}
}

// ComputeSeries derives period-over-period returns for targetCurrency from
// a date-ascending series: for each consecutive pair, end/start - 1. A
// missing or zero rate aborts the whole computation; no partial series is
// ever returned.
func (s *TWRRService) ComputeSeries(historicalRates []dto.HistoricalRate, targetCurrency string) ([]domain.TWRRPoint, error) {
	one := decimal.NewFromInt(1)
	var series []domain.TWRRPoint

	for i := 0; i+1 < len(historicalRates); i++ {
		startRate, okStart := historicalRates[i].Rates[targetCurrency]
		endRate, okEnd := historicalRates[i+1].Rates[targetCurrency]
		if !okStart || !okEnd {
			return nil, fmt.Errorf("%w: %s on %s", apperrors.ErrMissingRate, targetCurrency,
				historicalRates[i].ValuationDate.Format(domain.DateLayout))
		}
		if startRate.IsZero() {
			return nil, fmt.Errorf("%w: %s on %s", apperrors.ErrDivisionByZero, targetCurrency,
				historicalRates[i].ValuationDate.Format(domain.DateLayout))
		}

		series = append(series, domain.TWRRPoint{
			ValuationDate: historicalRates[i+1].ValuationDate,
			Return:        endRate.Div(startRate).Sub(one),
		})
	}
	return series, nil
}

// ComputeFromDate resolves EUR-based history from startDate to today and
// computes the return series for targetCurrency. The base currency itself
// is rejected up front: its return against itself is trivially zero.
func (s *TWRRService) ComputeFromDate(ctx context.Context, targetCurrency string, startDate time.Time) ([]domain.TWRRPoint, error) {
	if targetCurrency == domain.BaseCurrency {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBaseCurrencyReturn, targetCurrency)
	}
	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: start date %s must be before today", apperrors.ErrInvalidDateRange,
			startDate.Format(domain.DateLayout))
	}

	rates, err := s.resolver.ResolveHistorical(ctx, domain.BaseCurrency, startDate, endDate)
	if err != nil {
		return nil, err
	}

	series, err := s.ComputeSeries(rates, targetCurrency)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Computed TWRR series",
		slog.String("target", targetCurrency),
		slog.String("start_date", startDate.Format(domain.DateLayout)),
		slog.Int("points", len(series)))
	return series, nil
}
