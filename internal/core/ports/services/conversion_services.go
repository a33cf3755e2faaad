package services

import (
	"context"

	"github.com/fxdesk/exchange_system/internal/dto"
)

// ConversionSvc converts an amount between two supported currencies using a
// resolved rate.
type ConversionSvc interface {
	// Convert resolves the current cross rate and multiplies. Fails with
	// apperrors.ErrInvalidAmount for non-positive amounts and
	// apperrors.ErrSameCurrency for identity conversions.
	Convert(ctx context.Context, req dto.ConvertCurrencyRequest) (*dto.ConversionResult, error)
}

// ConversionSvcFacade combines all conversion service interfaces
type ConversionSvcFacade interface {
	ConversionSvc
}
