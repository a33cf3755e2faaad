package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func day(value string) time.Time {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Mock RateRepository ---

type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindByDate(ctx context.Context, date time.Time) (*domain.RateRecord, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}

func (m *MockRateRepository) FindRange(ctx context.Context, from, to time.Time) ([]domain.RateRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateRecord), args.Error(1)
}

func (m *MockRateRepository) FindLatest(ctx context.Context) (*domain.RateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}

func (m *MockRateRepository) Upsert(ctx context.Context, date time.Time, chf, usd, gbp decimal.Decimal) (*domain.RateRecord, error) {
	args := m.Called(ctx, date, chf, usd, gbp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}

// --- Fake provider registry and adapters ---

// fakeAdapter implements ports.RateProviderAdapter with canned behavior and
// counts its calls so tests can assert that cached paths stay provider-free.
type fakeAdapter struct {
	mu      sync.Mutex
	calls   int
	rates   *dto.ProviderRates
	err     error
	perDate func(date time.Time) (*dto.ProviderRates, error)
}

func (a *fakeAdapter) FetchRates(_ context.Context, _ string, date *time.Time) (*dto.ProviderRates, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if date != nil && a.perDate != nil {
		return a.perDate(*date)
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.rates, nil
}

func (a *fakeAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// fakeRegistry implements portssvc.ProviderRegistrySvcFacade for resolver
// tests. A nil adapter entry simulates an adapter that fails to load.
type fakeRegistry struct {
	providers []domain.Provider
	adapters  map[string]ports.RateProviderAdapter
	failures  []string
	listErr   error
}

func (r *fakeRegistry) ListActiveProviders(_ context.Context) ([]domain.Provider, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.providers, nil
}

func (r *fakeRegistry) LoadAdapter(_ context.Context, provider domain.Provider) ports.RateProviderAdapter {
	return r.adapters[provider.ProviderID]
}

func (r *fakeRegistry) UpdatePriority(_ context.Context, _ dto.UpdateProviderPriorityRequest) (*domain.Provider, error) {
	panic("not expected in resolver tests")
}

func (r *fakeRegistry) ReorderPriorities(_ context.Context) error {
	panic("not expected in resolver tests")
}

func (r *fakeRegistry) RecordFailure(_ context.Context, providerID string) {
	r.failures = append(r.failures, providerID)
}

func activeProvider(id, name string, priority int) domain.Provider {
	return domain.Provider{
		ProviderID: id,
		Name:       name,
		Priority:   priority,
		Active:     true,
		AdapterRef: "mock",
	}
}

// --- Mock resolver for the conversion and TWRR services ---

type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) ResolveCurrent(ctx context.Context, source, target string) (decimal.Decimal, error) {
	args := m.Called(ctx, source, target)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateResolver) ResolveHistorical(ctx context.Context, base string, from, to time.Time) ([]dto.HistoricalRate, error) {
	args := m.Called(ctx, base, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.HistoricalRate), args.Error(1)
}

func (m *MockRateResolver) EnsureDailyRates(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
