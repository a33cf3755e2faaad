package dto

import (
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
)

// UpdateProviderPriorityRequest defines the structure for a priority change.
type UpdateProviderPriorityRequest struct {
	ProviderID  string `json:"providerID" binding:"required"`
	NewPriority int    `json:"newPriority" binding:"required,min=1"`
}

// ProviderResponse defines the structure for API responses containing
// provider details. Credential material is never part of a response.
type ProviderResponse struct {
	ProviderID  string     `json:"providerID"`
	Name        string     `json:"name"`
	Priority    int        `json:"priority"`
	Active      bool       `json:"active"`
	AdapterRef  string     `json:"adapterRef"`
	LastFailure *time.Time `json:"lastFailure,omitempty"`
}

// ToProviderResponse converts a domain.Provider to a ProviderResponse DTO
func ToProviderResponse(p *domain.Provider) ProviderResponse {
	return ProviderResponse{
		ProviderID:  p.ProviderID,
		Name:        p.Name,
		Priority:    p.Priority,
		Active:      p.Active,
		AdapterRef:  p.AdapterRef,
		LastFailure: p.LastFailure,
	}
}

// ToListProviderResponse converts a slice of domain.Provider to DTOs.
func ToListProviderResponse(providers []domain.Provider) []ProviderResponse {
	responses := make([]ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = ToProviderResponse(&providers[i])
	}
	return responses
}
