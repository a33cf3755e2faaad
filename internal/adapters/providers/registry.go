// Package providers contains the concrete rate-provider adapters and the
// registry that resolves a provider's symbolic adapter reference into an
// adapter instance. The registry is populated once at startup; provider
// records store the identifier, never an implementation path.
package providers

import (
	"fmt"
	"sync"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
)

// Stable adapter identifiers stored in provider records.
const (
	AdapterFixer = "fixer"
	AdapterMock  = "mock"
)

// Factory constructs an adapter for one provider. apiKey is the opaque
// secret handed out by the credential store; factories that need no
// credentials ignore it.
type Factory func(provider domain.Provider, apiKey string) (ports.RateProviderAdapter, error)

// Registry maps adapter identifiers to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given identifier, replacing any
// previous registration.
func (r *Registry) Register(ref string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[ref] = factory
}

// New resolves the provider's adapter reference and constructs an adapter.
func (r *Registry) New(provider domain.Provider, apiKey string) (ports.RateProviderAdapter, error) {
	r.mu.RLock()
	factory, ok := r.factories[provider.AdapterRef]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown adapter reference %q for provider %s", provider.AdapterRef, provider.Name)
	}
	return factory(provider, apiKey)
}
