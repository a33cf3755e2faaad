package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	portssvc "github.com/fxdesk/exchange_system/internal/core/ports/services"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
)

// displayScale is the number of fractional digits used at the presentation
// boundary. Internal arithmetic keeps full decimal precision.
const displayScale = 2

// ConversionService converts amounts between supported currencies using the
// resolver's current cross rate.
type ConversionService struct {
	resolver portssvc.RateResolverSvcFacade
	logger   *slog.Logger
}

// NewConversionService creates a new ConversionService.
func NewConversionService(resolver portssvc.RateResolverSvcFacade, logger *slog.Logger) *ConversionService {
	return &ConversionService{resolver: resolver, logger: logger}
}

// Convert resolves the current source->target rate and multiplies. Identity
// conversion is rejected, not short-circuited to the input amount.
func (s *ConversionService) Convert(ctx context.Context, req dto.ConvertCurrencyRequest) (*dto.ConversionResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if req.SourceCurrency == req.TargetCurrency {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSameCurrency, req.SourceCurrency)
	}

	rate, err := s.resolver.ResolveCurrent(ctx, req.SourceCurrency, req.TargetCurrency)
	if err != nil {
		return nil, err
	}

	converted := req.Amount.Mul(rate)
	s.logger.Info("Converted amount",
		slog.String("source", req.SourceCurrency),
		slog.String("target", req.TargetCurrency),
		slog.String("amount", req.Amount.String()),
		slog.String("converted", converted.StringFixed(displayScale)))

	return &dto.ConversionResult{
		SourceCurrency:  req.SourceCurrency,
		TargetCurrency:  req.TargetCurrency,
		Amount:          req.Amount,
		ConvertedAmount: converted,
		RateUsed:        rate,
		FormattedAmount: converted.StringFixed(displayScale),
	}, nil
}
