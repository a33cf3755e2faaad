// Command rates_refresher ensures today's canonical exchange rates exist.
// An external scheduler (e.g. cron) runs it once per day: if the store
// already holds a record for today this is a no-op, otherwise the active
// provider chain is walked and the first complete rate set is persisted.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/fxdesk/exchange_system/internal/adapters/credentials"
	"github.com/fxdesk/exchange_system/internal/adapters/providers"
	portsrepo "github.com/fxdesk/exchange_system/internal/core/ports/repositories"
	"github.com/fxdesk/exchange_system/internal/core/services"
	"github.com/fxdesk/exchange_system/internal/platform/config"
	cachememory "github.com/fxdesk/exchange_system/internal/repositories/cache/memory"
	cacheredis "github.com/fxdesk/exchange_system/internal/repositories/cache/redis"
	"github.com/fxdesk/exchange_system/internal/repositories/database/pgsql"
	"github.com/fxdesk/exchange_system/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	// Cache: redis when configured, in-process otherwise.
	var cache portsrepo.RateCache
	if cfg.RedisAddr != "" {
		redisCache, err := cacheredis.NewRateCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisCache.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		cache = redisCache
	} else {
		logger.Warn("No redis address configured, using in-process cache")
		cache = cachememory.NewRateCache()
	}

	repos := pgsql.NewRepositoryProvider(dbPool, cache)

	// Adapter registry: symbolic identifiers to factories, populated here
	// at startup. Provider rows reference these identifiers only.
	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}
	registry := providers.NewRegistry()
	registry.Register(providers.AdapterFixer, providers.FixerFactory(httpClient, logger))
	registry.Register(providers.AdapterMock, providers.MockFactory())

	container := services.NewServiceContainer(repos, registry, credentials.NewEnvStore(), cfg.CacheTTL, logger)

	if err := container.Resolver.EnsureDailyRates(ctx); err != nil {
		logger.Error("Failed to update daily exchange rates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Successfully updated daily exchange rates")
}

// runMigrations applies all pending "up" migrations through a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Database migrations applied.")
	return nil
}
