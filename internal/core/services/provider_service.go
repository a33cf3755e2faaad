package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	portsrepo "github.com/fxdesk/exchange_system/internal/core/ports/repositories"
	"github.com/fxdesk/exchange_system/internal/dto"
)

// ProviderService maintains the ordered active provider set and mediates
// priority changes. Loaded adapters are memoized per provider; any mutation
// of provider state invalidates that memo explicitly and synchronously,
// there are no implicit reload triggers hidden behind persistence.
type ProviderService struct {
	providerRepo    portsrepo.ProviderRepositoryFacade
	adapterResolver ports.AdapterResolver
	credentials     ports.CredentialStore
	logger          *slog.Logger

	mu             sync.Mutex
	loadedAdapters map[string]ports.RateProviderAdapter
}

// NewProviderService creates a new ProviderService.
func NewProviderService(
	providerRepo portsrepo.ProviderRepositoryFacade,
	adapterResolver ports.AdapterResolver,
	credentials ports.CredentialStore,
	logger *slog.Logger,
) *ProviderService {
	return &ProviderService{
		providerRepo:    providerRepo,
		adapterResolver: adapterResolver,
		credentials:     credentials,
		logger:          logger,
		loadedAdapters:  make(map[string]ports.RateProviderAdapter),
	}
}

// ListActiveProviders returns the active providers in ascending priority order.
func (s *ProviderService) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.providerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active providers: %w", err)
	}
	return providers, nil
}

// LoadAdapter resolves the provider's adapter reference to a concrete
// adapter. A resolution failure makes this one provider unusable, never the
// whole chain: the failure is logged and nil is returned.
func (s *ProviderService) LoadAdapter(ctx context.Context, provider domain.Provider) ports.RateProviderAdapter {
	s.mu.Lock()
	if adapter, ok := s.loadedAdapters[provider.ProviderID]; ok {
		s.mu.Unlock()
		return adapter
	}
	s.mu.Unlock()

	apiKey, err := s.credentials.APIKey(ctx, provider.Name)
	if err != nil {
		s.logger.Warn("Failed to resolve provider credentials",
			slog.String("provider", provider.Name),
			slog.String("error", err.Error()))
		// The adapter decides whether a missing key is fatal to a fetch.
		apiKey = ""
	}

	adapter, err := s.adapterResolver.New(provider, apiKey)
	if err != nil {
		s.logger.Error("Failed to load adapter for provider",
			slog.String("provider", provider.Name),
			slog.String("adapter_ref", provider.AdapterRef),
			slog.String("error", err.Error()))
		return nil
	}

	s.mu.Lock()
	s.loadedAdapters[provider.ProviderID] = adapter
	s.mu.Unlock()
	return adapter
}

// UpdatePriority moves a provider inside the dense 1..N permutation. The
// repository performs all shifts and the final write in one transaction;
// afterwards the adapter memo is invalidated so the next resolution sees the
// new ordering with freshly constructed adapters.
func (s *ProviderService) UpdatePriority(ctx context.Context, req dto.UpdateProviderPriorityRequest) (*domain.Provider, error) {
	s.logger.Info("Updating provider priority",
		slog.String("provider_id", req.ProviderID),
		slog.Int("new_priority", req.NewPriority))

	provider, err := s.providerRepo.UpdatePriority(ctx, req.ProviderID, req.NewPriority)
	if err != nil {
		return nil, fmt.Errorf("failed to update provider priority: %w", err)
	}

	s.InvalidateAdapters()

	s.logger.Info("Provider priority updated",
		slog.String("provider", provider.Name),
		slog.Int("priority", provider.Priority))
	return provider, nil
}

// ReorderPriorities rewrites the active priorities as 1..N; a consistency
// repair after any external tampering. Idempotent.
func (s *ProviderService) ReorderPriorities(ctx context.Context) error {
	if err := s.providerRepo.ReorderPriorities(ctx); err != nil {
		return fmt.Errorf("failed to reorder provider priorities: %w", err)
	}
	s.InvalidateAdapters()
	return nil
}

// RecordFailure notes that the provider just failed a fetch. Best effort:
// a failed write here must not mask the original provider failure.
func (s *ProviderService) RecordFailure(ctx context.Context, providerID string) {
	if err := s.providerRepo.MarkFailure(ctx, providerID, time.Now().UTC()); err != nil {
		s.logger.Warn("Failed to record provider failure",
			slog.String("provider_id", providerID),
			slog.String("error", err.Error()))
	}
}

// InvalidateAdapters drops every memoized adapter instance.
func (s *ProviderService) InvalidateAdapters() {
	s.mu.Lock()
	s.loadedAdapters = make(map[string]ports.RateProviderAdapter)
	s.mu.Unlock()
}
