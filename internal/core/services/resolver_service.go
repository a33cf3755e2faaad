package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	portsrepo "github.com/fxdesk/exchange_system/internal/core/ports/repositories"
	portssvc "github.com/fxdesk/exchange_system/internal/core/ports/services"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/fxdesk/exchange_system/internal/utils/cachekeys"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolverService orchestrates the tiered cache -> store -> provider-chain
// lookup. Whatever it fetches from a provider is persisted through the rate
// repository and then cached; the cache itself is never a source of truth.
type ResolverService struct {
	rateRepo    portsrepo.RateRepositoryFacade
	cache       portsrepo.RateCache
	providerSvc portssvc.ProviderRegistrySvcFacade
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewResolverService creates a new ResolverService.
func NewResolverService(
	rateRepo portsrepo.RateRepositoryFacade,
	cache portsrepo.RateCache,
	providerSvc portssvc.ProviderRegistrySvcFacade,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ResolverService {
	return &ResolverService{
		rateRepo:    rateRepo,
		cache:       cache,
		providerSvc: providerSvc,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// ResolveCurrent returns today's cross rate from source to target, derived
// from the latest EUR-based record as rates[target]/rates[source] with EUR
// fixed at exactly 1. An empty store triggers one fetch-and-store pass
// before the lookup is retried once.
func (s *ResolverService) ResolveCurrent(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error) {
	logger := s.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("source", sourceCurrency),
		slog.String("target", targetCurrency))

	cacheKey := cachekeys.CurrentRate(sourceCurrency, targetCurrency, today())
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if rate, parseErr := decimal.NewFromString(cached); parseErr == nil {
			logger.Info("Using cached exchange rate")
			return rate, nil
		}
		// An unparseable entry is treated as a miss; it will be overwritten.
		logger.Warn("Discarding malformed cache entry", slog.String("key", cacheKey))
	}

	rate, err := s.crossRateFromLatest(ctx, sourceCurrency, targetCurrency)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			// Store read failures degrade to a miss; the provider chain is
			// still available.
			logger.Warn("Rate store read failed, falling back to providers", slog.String("error", err.Error()))
		}

		if _, fetchErr := s.fetchAndStore(ctx, logger); fetchErr != nil {
			return decimal.Decimal{}, fetchErr
		}

		rate, err = s.crossRateFromLatest(ctx, sourceCurrency, targetCurrency)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", apperrors.ErrRateUnavailable, sourceCurrency, targetCurrency)
		}
	}

	s.cachePut(ctx, logger, cacheKey, rate.String())
	return rate, nil
}

// crossRateFromLatest computes target/source from the newest stored record.
func (s *ResolverService) crossRateFromLatest(ctx context.Context, sourceCurrency, targetCurrency string) (decimal.Decimal, error) {
	latest, err := s.rateRepo.FindLatest(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	sourceRate, okSource := latest.RateFor(sourceCurrency)
	targetRate, okTarget := latest.RateFor(targetCurrency)
	if !okSource || !okTarget || sourceRate.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", apperrors.ErrRateUnavailable, sourceCurrency, targetCurrency)
	}
	return targetRate.Div(sourceRate), nil
}

// ResolveHistorical returns the per-date EUR-based rates inside [from, to],
// ascending by date. Store hits are returned as found; full date coverage of
// the requested range is not verified.
func (s *ResolverService) ResolveHistorical(ctx context.Context, baseCurrency string, from, to time.Time) ([]dto.HistoricalRate, error) {
	logger := s.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("base", baseCurrency),
		slog.String("from", from.Format(domain.DateLayout)),
		slog.String("to", to.Format(domain.DateLayout)))

	cacheKey := cachekeys.HistoricalRates(baseCurrency, from, to)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var series []dto.HistoricalRate
		if unmarshalErr := json.Unmarshal([]byte(cached), &series); unmarshalErr == nil {
			logger.Info("Returning cached historical rates")
			return series, nil
		}
		logger.Warn("Discarding malformed cache entry", slog.String("key", cacheKey))
	}

	records, err := s.rateRepo.FindRange(ctx, from, to)
	if err != nil {
		logger.Warn("Rate store range read failed, falling back to providers", slog.String("error", err.Error()))
	}
	if len(records) > 0 {
		series := make([]dto.HistoricalRate, len(records))
		for i, record := range records {
			series[i] = dto.HistoricalRate{
				ValuationDate: record.ValuationDate,
				Rates:         record.Rates(),
			}
		}
		s.cacheSeries(ctx, logger, cacheKey, series)
		logger.Info("Returning stored historical rates", slog.Int("days", len(series)))
		return series, nil
	}

	series, err := s.fetchHistoricalFromProviders(ctx, logger, baseCurrency, from, to)
	if err != nil {
		return nil, err
	}
	s.cacheSeries(ctx, logger, cacheKey, series)
	return series, nil
}

// fetchHistoricalFromProviders walks the provider chain in priority order.
// The first provider that yields at least one per-date result wins; a
// per-date failure only skips that date. Every collected record is persisted
// before the series is returned.
func (s *ResolverService) fetchHistoricalFromProviders(ctx context.Context, logger *slog.Logger, baseCurrency string, from, to time.Time) ([]dto.HistoricalRate, error) {
	providers, err := s.providerSvc.ListActiveProviders(ctx)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, apperrors.ErrNoProviders
	}

	for _, provider := range providers {
		adapter := s.providerSvc.LoadAdapter(ctx, provider)
		if adapter == nil {
			continue
		}

		var collected []dto.ProviderRates
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			date := day
			rates, fetchErr := adapter.FetchRates(ctx, baseCurrency, &date)
			if fetchErr != nil {
				logger.Debug("Skipping date after provider failure",
					slog.String("provider", provider.Name),
					slog.String("date", date.Format(domain.DateLayout)),
					slog.String("error", fetchErr.Error()))
				continue
			}
			if !rates.HasAll(domain.SupportedCurrencies) {
				logger.Debug("Skipping date with incomplete rate set",
					slog.String("provider", provider.Name),
					slog.String("date", date.Format(domain.DateLayout)))
				continue
			}
			collected = append(collected, *rates)
		}

		if len(collected) == 0 {
			logger.Warn("Provider produced no historical rates, trying next",
				slog.String("provider", provider.Name))
			s.providerSvc.RecordFailure(ctx, provider.ProviderID)
			continue
		}

		series := make([]dto.HistoricalRate, 0, len(collected))
		for _, rates := range collected {
			if _, upsertErr := s.rateRepo.Upsert(ctx, rates.Date,
				rates.Rates[domain.CurrencyCHF],
				rates.Rates[domain.CurrencyUSD],
				rates.Rates[domain.CurrencyGBP],
			); upsertErr != nil {
				// Write failures must never look like success.
				return nil, upsertErr
			}
			series = append(series, dto.HistoricalRate{ValuationDate: rates.Date, Rates: rates.Rates})
		}

		logger.Info("Fetched historical rates from provider",
			slog.String("provider", provider.Name),
			slog.Int("days", len(series)))
		return series, nil
	}

	return nil, apperrors.ErrAllProvidersFailed
}

// fetchAndStore walks the provider chain for the latest rates and persists
// the first complete set as today's record.
func (s *ResolverService) fetchAndStore(ctx context.Context, logger *slog.Logger) (*domain.RateRecord, error) {
	providers, err := s.providerSvc.ListActiveProviders(ctx)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		return nil, apperrors.ErrNoProviders
	}

	for _, provider := range providers {
		adapter := s.providerSvc.LoadAdapter(ctx, provider)
		if adapter == nil {
			continue
		}

		rates, fetchErr := adapter.FetchRates(ctx, domain.BaseCurrency, nil)
		if fetchErr != nil {
			logger.Warn("Provider failed, trying next",
				slog.String("provider", provider.Name),
				slog.String("error", fetchErr.Error()))
			s.providerSvc.RecordFailure(ctx, provider.ProviderID)
			continue
		}
		if !rates.HasAll(domain.SupportedCurrencies) {
			logger.Warn("Provider returned incomplete rate set, trying next",
				slog.String("provider", provider.Name))
			s.providerSvc.RecordFailure(ctx, provider.ProviderID)
			continue
		}

		valuationDate := rates.Date
		if valuationDate.IsZero() {
			valuationDate = today()
		}
		record, upsertErr := s.rateRepo.Upsert(ctx, valuationDate,
			rates.Rates[domain.CurrencyCHF],
			rates.Rates[domain.CurrencyUSD],
			rates.Rates[domain.CurrencyGBP],
		)
		if upsertErr != nil {
			return nil, upsertErr
		}

		logger.Info("Stored exchange rates from provider",
			slog.String("provider", provider.Name),
			slog.String("valuation_date", valuationDate.Format(domain.DateLayout)))
		return record, nil
	}

	return nil, apperrors.ErrAllProvidersFailed
}

// EnsureDailyRates is the daily-refresh entry point invoked by an external
// scheduler: a no-op when today's record exists, else one fetch-and-store.
func (s *ResolverService) EnsureDailyRates(ctx context.Context) error {
	logger := s.logger.With(slog.String("request_id", uuid.NewString()))

	if _, err := s.rateRepo.FindByDate(ctx, today()); err == nil {
		logger.Info("Today's exchange rates already present")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Rate store read failed, refetching", slog.String("error", err.Error()))
	}

	if _, err := s.fetchAndStore(ctx, logger); err != nil {
		return err
	}
	return nil
}

// cachePut stores a cache entry, logging and swallowing failures: the cache
// is an optimization, not a dependency.
func (s *ResolverService) cachePut(ctx context.Context, logger *slog.Logger, key, value string) {
	if err := s.cache.Put(ctx, key, value, s.cacheTTL); err != nil {
		logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *ResolverService) cacheSeries(ctx context.Context, logger *slog.Logger, key string, series []dto.HistoricalRate) {
	encoded, err := json.Marshal(series)
	if err != nil {
		logger.Warn("Failed to encode series for cache", slog.String("error", err.Error()))
		return
	}
	s.cachePut(ctx, logger, key, string(encoded))
}
