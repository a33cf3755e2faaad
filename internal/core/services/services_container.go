package services

import (
	"log/slog"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/ports"
	portsrepo "github.com/fxdesk/exchange_system/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/exchange_system/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	adapterResolver ports.AdapterResolver,
	credentials ports.CredentialStore,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The provider registry comes first since the resolver walks it.
	container.Providers = NewProviderService(repos.ProviderRepo, adapterResolver, credentials, logger)

	container.Resolver = NewResolverService(repos.RateRepo, repos.Cache, container.Providers, cacheTTL, logger)

	// Conversion and TWRR consume the resolver's output only.
	container.Conversion = NewConversionService(container.Resolver, logger)
	container.TWRR = NewTWRRService(container.Resolver, logger)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ProviderRegistrySvcFacade = (*ProviderService)(nil)
	_ portssvc.RateResolverSvcFacade     = (*ResolverService)(nil)
	_ portssvc.ConversionSvcFacade       = (*ConversionService)(nil)
	_ portssvc.TWRRSvcFacade             = (*TWRRService)(nil)
)
