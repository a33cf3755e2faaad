package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
)

// ProviderRepository is an in-memory ProviderRepositoryFacade. The dense
// priority shifts mirror the pgsql implementation statement for statement.
type ProviderRepository struct {
	mu        sync.RWMutex
	providers map[string]*domain.Provider
}

// NewProviderRepository creates an in-memory provider repository seeded with
// the given providers.
func NewProviderRepository(seed ...domain.Provider) *ProviderRepository {
	r := &ProviderRepository{providers: make(map[string]*domain.Provider, len(seed))}
	for i := range seed {
		p := seed[i]
		r.providers[p.ProviderID] = &p
	}
	return r
}

func (r *ProviderRepository) activeSorted() []*domain.Provider {
	var active []*domain.Provider
	for _, p := range r.providers {
		if p.Active {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Priority < active[j].Priority })
	return active
}

// ListActive retrieves all active providers ordered by ascending priority.
func (r *ProviderRepository) ListActive(_ context.Context) ([]domain.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := r.activeSorted()
	out := make([]domain.Provider, len(active))
	for i, p := range active {
		out[i] = *p
	}
	return out, nil
}

// FindActiveByID retrieves an active provider by ID.
func (r *ProviderRepository) FindActiveByID(_ context.Context, providerID string) (*domain.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[providerID]
	if !ok || !p.Active {
		return nil, fmt.Errorf("%w: provider %s not found or inactive", apperrors.ErrNotFound, providerID)
	}
	copied := *p
	return &copied, nil
}

// UpdatePriority moves the provider to newPriority and shifts the active
// providers in between, keeping the permutation dense. The write lock makes
// the whole move atomic.
func (r *ProviderRepository) UpdatePriority(_ context.Context, providerID string, newPriority int) (*domain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.providers[providerID]
	if !ok || !target.Active {
		return nil, fmt.Errorf("%w: provider %s not found or inactive", apperrors.ErrNotFound, providerID)
	}

	activeCount := len(r.activeSorted())
	if newPriority < 1 || newPriority > activeCount {
		return nil, fmt.Errorf("%w: %d must be between 1 and %d", apperrors.ErrInvalidPriority, newPriority, activeCount)
	}

	currentPriority := target.Priority
	if currentPriority == newPriority {
		copied := *target
		return &copied, nil
	}

	for _, p := range r.providers {
		if !p.Active || p.ProviderID == providerID {
			continue
		}
		switch {
		case newPriority < currentPriority && p.Priority >= newPriority && p.Priority < currentPriority:
			p.Priority++
		case newPriority > currentPriority && p.Priority > currentPriority && p.Priority <= newPriority:
			p.Priority--
		}
	}
	target.Priority = newPriority

	copied := *target
	return &copied, nil
}

// ReorderPriorities rewrites the active priorities as 1..N in current
// ascending order.
func (r *ProviderRepository) ReorderPriorities(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for index, p := range r.activeSorted() {
		p.Priority = index + 1
	}
	return nil
}

// MarkFailure records the time of the provider's most recent failure.
func (r *ProviderRepository) MarkFailure(_ context.Context, providerID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[providerID]
	if !ok {
		return fmt.Errorf("%w: provider %s", apperrors.ErrNotFound, providerID)
	}
	failedAt := at
	p.LastFailure = &failedAt
	return nil
}
