package mapping

import (
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/models"
)

// ToModelProvider converts a domain Provider to a model Provider
func ToModelProvider(d domain.Provider) models.Provider {
	return models.Provider{
		ProviderID:         d.ProviderID,
		Name:               d.Name,
		Priority:           d.Priority,
		Active:             d.Active,
		CurrentRatesURL:    d.CurrentRatesURL,
		HistoricalRatesURL: d.HistoricalRatesURL,
		AdapterRef:         d.AdapterRef,
		LastFailure:        d.LastFailure,
	}
}

// ToDomainProvider converts a model Provider to a domain Provider
func ToDomainProvider(m models.Provider) domain.Provider {
	return domain.Provider{
		ProviderID:         m.ProviderID,
		Name:               m.Name,
		Priority:           m.Priority,
		Active:             m.Active,
		CurrentRatesURL:    m.CurrentRatesURL,
		HistoricalRatesURL: m.HistoricalRatesURL,
		AdapterRef:         m.AdapterRef,
		LastFailure:        m.LastFailure,
	}
}
