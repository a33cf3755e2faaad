package dto

import (
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
)

// TWRRSeriesRequest defines the structure for a time-weighted-return request.
// The series runs from StartDate (inclusive) to today.
type TWRRSeriesRequest struct {
	TargetCurrency string    `json:"targetCurrency" binding:"required,len=3,uppercase"`
	StartDate      time.Time `json:"startDate" binding:"required"`
}

// TWRRPointResponse is one point of the computed return series.
type TWRRPointResponse struct {
	ValuationDate string `json:"valuationDate"`
	TWRR          string `json:"twrr"`
}

// ToTWRRPointResponses converts domain TWRR points to their response form.
func ToTWRRPointResponses(points []domain.TWRRPoint) []TWRRPointResponse {
	responses := make([]TWRRPointResponse, len(points))
	for i, p := range points {
		responses[i] = TWRRPointResponse{
			ValuationDate: p.ValuationDate.Format(domain.DateLayout),
			TWRR:          p.Return.String(),
		}
	}
	return responses
}
