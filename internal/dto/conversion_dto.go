package dto

import (
	"github.com/shopspring/decimal"
)

// ConvertCurrencyRequest defines the structure for a conversion request.
// Currency-code well-formedness and amount parsing are the presentation
// layer's concern; codes arriving here are expected to be one of the
// supported set.
type ConvertCurrencyRequest struct {
	SourceCurrency string          `json:"sourceCurrency" binding:"required,len=3,uppercase"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,len=3,uppercase"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}

// ConversionResult defines the outcome of a conversion. ConvertedAmount
// carries full decimal precision; FormattedAmount is the 2-fractional-digit
// presentation form and is the only place rounding happens.
type ConversionResult struct {
	SourceCurrency  string          `json:"sourceCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	FormattedAmount string          `json:"formattedAmount"`
}
