package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/models"
	"github.com/fxdesk/exchange_system/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxRateRepository implements the repositories.RateRepositoryFacade
// interface using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const rateColumns = `valuation_date, chf_rate, usd_rate, gbp_rate`

// FindByDate retrieves the rate record for one valuation date.
func (r *PgxRateRepository) FindByDate(ctx context.Context, date time.Time) (*domain.RateRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM exchange_rates WHERE valuation_date = $1;`, rateColumns)

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, date).Scan(
		&modelRate.ValuationDate, &modelRate.CHFRate, &modelRate.USDRate, &modelRate.GBPRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no exchange rates for %s", apperrors.ErrNotFound, date.Format(domain.DateLayout))
		}
		return nil, storeErr("failed to find exchange rates by date", err)
	}

	domainRate := mapping.ToDomainRateRecord(modelRate)
	return &domainRate, nil
}

// FindRange retrieves the rate records inside [from, to], ascending by date.
// Coverage of every date in the range is not verified here.
func (r *PgxRateRepository) FindRange(ctx context.Context, from, to time.Time) ([]domain.RateRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rates
		WHERE valuation_date BETWEEN $1 AND $2
		ORDER BY valuation_date ASC;`, rateColumns)

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, storeErr("failed to query exchange rate range", err)
	}
	defer rows.Close()

	var records []domain.RateRecord
	for rows.Next() {
		var modelRate models.ExchangeRate
		if err := rows.Scan(
			&modelRate.ValuationDate, &modelRate.CHFRate, &modelRate.USDRate, &modelRate.GBPRate,
		); err != nil {
			return nil, storeErr("failed to scan exchange rate row", err)
		}
		records = append(records, mapping.ToDomainRateRecord(modelRate))
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to read exchange rate rows", err)
	}
	return records, nil
}

// FindLatest retrieves the record with the maximum valuation date.
func (r *PgxRateRepository) FindLatest(ctx context.Context) (*domain.RateRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rates
		ORDER BY valuation_date DESC
		LIMIT 1;`, rateColumns)

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query).Scan(
		&modelRate.ValuationDate, &modelRate.CHFRate, &modelRate.USDRate, &modelRate.GBPRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate store is empty", apperrors.ErrNotFound)
		}
		return nil, storeErr("failed to find latest exchange rates", err)
	}

	domainRate := mapping.ToDomainRateRecord(modelRate)
	return &domainRate, nil
}

// Upsert writes the three rates for one valuation date, overwriting an
// existing row for the same date. The single INSERT .. ON CONFLICT statement
// keeps the write atomic: either all three currency fields land or none do.
func (r *PgxRateRepository) Upsert(ctx context.Context, date time.Time, chf, usd, gbp decimal.Decimal) (*domain.RateRecord, error) {
	query := `
		INSERT INTO exchange_rates (valuation_date, chf_rate, usd_rate, gbp_rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (valuation_date) DO UPDATE
		SET chf_rate = EXCLUDED.chf_rate,
		    usd_rate = EXCLUDED.usd_rate,
		    gbp_rate = EXCLUDED.gbp_rate
		RETURNING valuation_date, chf_rate, usd_rate, gbp_rate;`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, date, chf, usd, gbp).Scan(
		&modelRate.ValuationDate, &modelRate.CHFRate, &modelRate.USDRate, &modelRate.GBPRate,
	)
	if err != nil {
		return nil, storeErr("failed to upsert exchange rates", err)
	}

	domainRate := mapping.ToDomainRateRecord(modelRate)
	return &domainRate, nil
}
