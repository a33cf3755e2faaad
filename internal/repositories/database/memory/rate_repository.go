// Package memory provides map-backed repository implementations with the
// same semantics as the pgsql ones. They back the test suites and local
// development without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateRepository is an in-memory RateRepositoryFacade keyed by calendar date.
type RateRepository struct {
	mu      sync.RWMutex
	records map[string]domain.RateRecord // keyed by YYYY-MM-DD
}

// NewRateRepository creates an empty in-memory rate repository.
func NewRateRepository() *RateRepository {
	return &RateRepository{records: make(map[string]domain.RateRecord)}
}

func dateKey(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// FindByDate retrieves the rate record for one valuation date.
func (r *RateRepository) FindByDate(_ context.Context, date time.Time) (*domain.RateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[dateKey(date)]
	if !ok {
		return nil, fmt.Errorf("%w: no exchange rates for %s", apperrors.ErrNotFound, dateKey(date))
	}
	return &record, nil
}

// FindRange retrieves the records inside [from, to], ascending by date.
func (r *RateRepository) FindRange(_ context.Context, from, to time.Time) ([]domain.RateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fromKey, toKey := dateKey(from), dateKey(to)
	var records []domain.RateRecord
	for key, record := range r.records {
		if key >= fromKey && key <= toKey {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ValuationDate.Before(records[j].ValuationDate)
	})
	return records, nil
}

// FindLatest retrieves the record with the maximum valuation date.
func (r *RateRepository) FindLatest(_ context.Context) (*domain.RateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest domain.RateRecord
		found  bool
	)
	for _, record := range r.records {
		if !found || record.ValuationDate.After(latest.ValuationDate) {
			latest = record
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: exchange rate store is empty", apperrors.ErrNotFound)
	}
	return &latest, nil
}

// Upsert writes the three rates for one valuation date under the write lock,
// which makes the record swap atomic.
func (r *RateRepository) Upsert(_ context.Context, date time.Time, chf, usd, gbp decimal.Decimal) (*domain.RateRecord, error) {
	record := domain.RateRecord{
		ValuationDate: date,
		CHFRate:       chf,
		USDRate:       usd,
		GBPRate:       gbp,
	}

	r.mu.Lock()
	r.records[dateKey(date)] = record
	r.mu.Unlock()

	return &record, nil
}
