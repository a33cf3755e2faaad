package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	"github.com/fxdesk/exchange_system/internal/core/services"
	"github.com/fxdesk/exchange_system/internal/dto"
	cachememory "github.com/fxdesk/exchange_system/internal/repositories/cache/memory"
	"github.com/fxdesk/exchange_system/internal/utils/cachekeys"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResolverServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	rateRepo *MockRateRepository
	cache    *cachememory.RateCache
	registry *fakeRegistry
	service  *services.ResolverService
}

func (s *ResolverServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.rateRepo = new(MockRateRepository)
	s.cache = cachememory.NewRateCache()
	s.registry = &fakeRegistry{adapters: make(map[string]ports.RateProviderAdapter)}
	s.service = services.NewResolverService(s.rateRepo, s.cache, s.registry, time.Hour, newTestLogger())
}

func TestResolverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverServiceTestSuite))
}

func utcToday() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func latestRecord() *domain.RateRecord {
	return &domain.RateRecord{
		ValuationDate: utcToday(),
		CHFRate:       dec("0.94"),
		USDRate:       dec("1.03"),
		GBPRate:       dec("0.83"),
	}
}

func completeRates(date time.Time) *dto.ProviderRates {
	return &dto.ProviderRates{
		Date: date,
		Base: domain.BaseCurrency,
		Rates: map[string]decimal.Decimal{
			domain.CurrencyCHF: dec("0.95"),
			domain.CurrencyUSD: dec("1.10"),
			domain.CurrencyGBP: dec("0.85"),
		},
	}
}

func (s *ResolverServiceTestSuite) TestResolveCurrentUsesCachedRate() {
	key := cachekeys.CurrentRate(domain.CurrencyUSD, domain.CurrencyGBP, utcToday())
	s.Require().NoError(s.cache.Put(s.ctx, key, "0.805825", time.Hour))

	rate, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)

	s.Require().NoError(err)
	s.True(rate.Equal(dec("0.805825")))
	s.rateRepo.AssertNotCalled(s.T(), "FindLatest", mock.Anything)
}

func (s *ResolverServiceTestSuite) TestResolveCurrentStoreHitIsCached() {
	s.rateRepo.On("FindLatest", s.ctx).Return(latestRecord(), nil).Once()

	first, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)
	s.Require().NoError(err)

	// The second resolution must be served from the cache: FindLatest is
	// expected exactly once and no provider is ever consulted.
	second, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)
	s.Require().NoError(err)

	expected := dec("0.83").Div(dec("1.03"))
	s.True(first.Equal(expected), "got %s", first)
	s.True(second.Equal(expected), "got %s", second)
	s.Empty(s.registry.failures)
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ResolverServiceTestSuite) TestResolveCurrentTreatsEURAsUnity() {
	s.rateRepo.On("FindLatest", s.ctx).Return(latestRecord(), nil).Once()

	rate, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyEUR, domain.CurrencyCHF)

	s.Require().NoError(err)
	s.True(rate.Equal(dec("0.94")))
}

func (s *ResolverServiceTestSuite) TestResolveCurrentFailsOverToNextProvider() {
	broken := &fakeAdapter{err: apperrors.NewProviderError("one", apperrors.ProviderErrTransport, context.DeadlineExceeded)}
	alsoBroken := &fakeAdapter{err: apperrors.NewProviderError("two", apperrors.ProviderErrAuth, apperrors.ErrValidation)}
	working := &fakeAdapter{rates: completeRates(utcToday())}

	s.registry.providers = []domain.Provider{
		activeProvider("p1", "one", 1),
		activeProvider("p2", "two", 2),
		activeProvider("p3", "three", 3),
	}
	s.registry.adapters["p1"] = broken
	s.registry.adapters["p2"] = alsoBroken
	s.registry.adapters["p3"] = working

	stored := &domain.RateRecord{
		ValuationDate: utcToday(),
		CHFRate:       dec("0.95"),
		USDRate:       dec("1.10"),
		GBPRate:       dec("0.85"),
	}
	s.rateRepo.On("FindLatest", s.ctx).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, utcToday(), dec("0.95"), dec("1.10"), dec("0.85")).
		Return(stored, nil).Once()
	s.rateRepo.On("FindLatest", s.ctx).Return(stored, nil).Once()

	rate, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyCHF)

	s.Require().NoError(err)
	s.True(rate.Equal(dec("0.95").Div(dec("1.10"))))
	s.Equal([]string{"p1", "p2"}, s.registry.failures)
	s.Equal(1, working.callCount())
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ResolverServiceTestSuite) TestResolveCurrentNoProvidersConfigured() {
	s.rateRepo.On("FindLatest", s.ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)

	s.Require().ErrorIs(err, apperrors.ErrNoProviders)
}

func (s *ResolverServiceTestSuite) TestResolveCurrentAllProvidersFailed() {
	s.registry.providers = []domain.Provider{activeProvider("p1", "one", 1)}
	s.registry.adapters["p1"] = &fakeAdapter{
		err: apperrors.NewProviderError("one", apperrors.ProviderErrMalformed, apperrors.ErrValidation),
	}
	s.rateRepo.On("FindLatest", s.ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)

	s.Require().ErrorIs(err, apperrors.ErrAllProvidersFailed)
	s.Equal([]string{"p1"}, s.registry.failures)
}

func (s *ResolverServiceTestSuite) TestResolveCurrentIncompleteRateSetFailsProvider() {
	partial := completeRates(utcToday())
	delete(partial.Rates, domain.CurrencyGBP)
	s.registry.providers = []domain.Provider{activeProvider("p1", "one", 1)}
	s.registry.adapters["p1"] = &fakeAdapter{rates: partial}
	s.rateRepo.On("FindLatest", s.ctx).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)

	s.Require().ErrorIs(err, apperrors.ErrAllProvidersFailed)
	s.Equal([]string{"p1"}, s.registry.failures)
}

func (s *ResolverServiceTestSuite) TestResolveCurrentSkipsUnloadableAdapter() {
	s.registry.providers = []domain.Provider{
		activeProvider("p1", "one", 1),
		activeProvider("p2", "two", 2),
	}
	// p1 has no adapter entry: LoadAdapter returns nil and the chain moves on.
	working := &fakeAdapter{rates: completeRates(utcToday())}
	s.registry.adapters["p2"] = working

	stored := latestRecord()
	s.rateRepo.On("FindLatest", s.ctx).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, utcToday(), mock.Anything, mock.Anything, mock.Anything).
		Return(stored, nil).Once()
	s.rateRepo.On("FindLatest", s.ctx).Return(stored, nil).Once()

	_, err := s.service.ResolveCurrent(s.ctx, domain.CurrencyUSD, domain.CurrencyGBP)

	s.Require().NoError(err)
	s.Equal(1, working.callCount())
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalCacheHit() {
	from, to := day("2026-08-01"), day("2026-08-03")
	series := []dto.HistoricalRate{
		{ValuationDate: from, Rates: map[string]decimal.Decimal{domain.CurrencyCHF: dec("0.94")}},
	}
	encoded, err := json.Marshal(series)
	s.Require().NoError(err)
	key := cachekeys.HistoricalRates(domain.BaseCurrency, from, to)
	s.Require().NoError(s.cache.Put(s.ctx, key, string(encoded), time.Hour))

	got, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.True(got[0].ValuationDate.Equal(from))
	s.rateRepo.AssertNotCalled(s.T(), "FindRange", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalStoreHit() {
	from, to := day("2026-08-01"), day("2026-08-10")
	records := []domain.RateRecord{
		{ValuationDate: day("2026-08-02"), CHFRate: dec("0.94"), USDRate: dec("1.03"), GBPRate: dec("0.83")},
		{ValuationDate: day("2026-08-05"), CHFRate: dec("0.95"), USDRate: dec("1.04"), GBPRate: dec("0.82")},
	}
	s.rateRepo.On("FindRange", s.ctx, from, to).Return(records, nil).Once()

	// Two stored days inside a ten-day window still count as a store hit;
	// the provider chain is not consulted to fill the gaps.
	got, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.True(got[0].ValuationDate.Equal(day("2026-08-02")))
	s.True(got[1].ValuationDate.Equal(day("2026-08-05")))
	s.True(got[1].Rates[domain.CurrencyGBP].Equal(dec("0.82")))
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalProviderWalkSkipsFailedDates() {
	from, to := day("2026-08-01"), day("2026-08-03")
	adapter := &fakeAdapter{perDate: func(date time.Time) (*dto.ProviderRates, error) {
		if date.Equal(day("2026-08-02")) {
			return nil, apperrors.NewProviderError("one", apperrors.ProviderErrTransport, context.DeadlineExceeded)
		}
		return completeRates(date), nil
	}}
	s.registry.providers = []domain.Provider{activeProvider("p1", "one", 1)}
	s.registry.adapters["p1"] = adapter

	s.rateRepo.On("FindRange", s.ctx, from, to).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, day("2026-08-01"), dec("0.95"), dec("1.10"), dec("0.85")).
		Return(&domain.RateRecord{ValuationDate: day("2026-08-01")}, nil).Once()
	s.rateRepo.On("Upsert", s.ctx, day("2026-08-03"), dec("0.95"), dec("1.10"), dec("0.85")).
		Return(&domain.RateRecord{ValuationDate: day("2026-08-03")}, nil).Once()

	got, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.True(got[0].ValuationDate.Equal(day("2026-08-01")))
	s.True(got[1].ValuationDate.Equal(day("2026-08-03")))
	s.Empty(s.registry.failures)
	s.rateRepo.AssertExpectations(s.T())
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalFailsOverWhenProviderYieldsNothing() {
	from, to := day("2026-08-01"), day("2026-08-02")
	empty := &fakeAdapter{perDate: func(time.Time) (*dto.ProviderRates, error) {
		return nil, apperrors.NewProviderError("one", apperrors.ProviderErrTransport, context.DeadlineExceeded)
	}}
	working := &fakeAdapter{perDate: func(date time.Time) (*dto.ProviderRates, error) {
		return completeRates(date), nil
	}}
	s.registry.providers = []domain.Provider{
		activeProvider("p1", "one", 1),
		activeProvider("p2", "two", 2),
	}
	s.registry.adapters["p1"] = empty
	s.registry.adapters["p2"] = working

	s.rateRepo.On("FindRange", s.ctx, from, to).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RateRecord{}, nil).Twice()

	got, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().NoError(err)
	s.Len(got, 2)
	s.Equal([]string{"p1"}, s.registry.failures)
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalNoProvidersConfigured() {
	from, to := day("2026-08-01"), day("2026-08-02")
	s.rateRepo.On("FindRange", s.ctx, from, to).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().ErrorIs(err, apperrors.ErrNoProviders)
}

func (s *ResolverServiceTestSuite) TestResolveHistoricalStoreWriteFailurePropagates() {
	from, to := day("2026-08-01"), day("2026-08-01")
	s.registry.providers = []domain.Provider{activeProvider("p1", "one", 1)}
	s.registry.adapters["p1"] = &fakeAdapter{perDate: func(date time.Time) (*dto.ProviderRates, error) {
		return completeRates(date), nil
	}}

	s.rateRepo.On("FindRange", s.ctx, from, to).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrStore).Once()

	_, err := s.service.ResolveHistorical(s.ctx, domain.BaseCurrency, from, to)

	s.Require().ErrorIs(err, apperrors.ErrStore)
}

func (s *ResolverServiceTestSuite) TestEnsureDailyRatesNoOpWhenFresh() {
	s.rateRepo.On("FindByDate", s.ctx, utcToday()).Return(latestRecord(), nil).Once()

	err := s.service.EnsureDailyRates(s.ctx)

	s.Require().NoError(err)
	s.rateRepo.AssertExpectations(s.T())
	s.rateRepo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ResolverServiceTestSuite) TestEnsureDailyRatesFetchesWhenStale() {
	s.registry.providers = []domain.Provider{activeProvider("p1", "one", 1)}
	s.registry.adapters["p1"] = &fakeAdapter{rates: completeRates(utcToday())}

	s.rateRepo.On("FindByDate", s.ctx, utcToday()).Return(nil, apperrors.ErrNotFound).Once()
	s.rateRepo.On("Upsert", s.ctx, utcToday(), dec("0.95"), dec("1.10"), dec("0.85")).
		Return(latestRecord(), nil).Once()

	err := s.service.EnsureDailyRates(s.ctx)

	s.Require().NoError(err)
	s.rateRepo.AssertExpectations(s.T())
}
