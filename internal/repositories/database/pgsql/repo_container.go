package pgsql

import (
	portsrepo "github.com/fxdesk/exchange_system/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories. The cache slot is
// left to the caller, which decides between the redis and memory backends.
func NewRepositoryProvider(dbPool *pgxpool.Pool, cache portsrepo.RateCache) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo:     NewPgxRateRepository(dbPool),
		ProviderRepo: NewPgxProviderRepository(dbPool),
		Cache:        cache,
	}
}
