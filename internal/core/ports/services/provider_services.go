package services

import (
	"context"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	"github.com/fxdesk/exchange_system/internal/dto"
)

// ProviderRegistryReaderSvc defines read operations over the provider chain
type ProviderRegistryReaderSvc interface {
	// ListActiveProviders returns the active providers in ascending
	// priority order.
	ListActiveProviders(ctx context.Context) ([]domain.Provider, error)

	// LoadAdapter resolves the provider's adapter reference to a concrete
	// adapter instance. Resolution failure returns nil and is logged;
	// callers treat the provider as unusable, not the chain as broken.
	LoadAdapter(ctx context.Context, provider domain.Provider) ports.RateProviderAdapter
}

// ProviderRegistryWriterSvc defines mutations of the provider chain
type ProviderRegistryWriterSvc interface {
	// UpdatePriority moves a provider inside the dense 1..N permutation.
	UpdatePriority(ctx context.Context, req dto.UpdateProviderPriorityRequest) (*domain.Provider, error)

	// ReorderPriorities repairs the permutation after external tampering.
	ReorderPriorities(ctx context.Context) error

	// RecordFailure notes that the provider just failed a fetch.
	RecordFailure(ctx context.Context, providerID string)
}

// ProviderRegistrySvcFacade combines all provider registry interfaces
type ProviderRegistrySvcFacade interface {
	ProviderRegistryReaderSvc
	ProviderRegistryWriterSvc
}
