package mapping

import (
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/models"
)

// ToModelExchangeRate converts a domain RateRecord to a model ExchangeRate
func ToModelExchangeRate(d domain.RateRecord) models.ExchangeRate {
	return models.ExchangeRate{
		ValuationDate: d.ValuationDate,
		CHFRate:       d.CHFRate,
		USDRate:       d.USDRate,
		GBPRate:       d.GBPRate,
	}
}

// ToDomainRateRecord converts a model ExchangeRate to a domain RateRecord
func ToDomainRateRecord(m models.ExchangeRate) domain.RateRecord {
	return domain.RateRecord{
		ValuationDate: m.ValuationDate,
		CHFRate:       m.CHFRate,
		USDRate:       m.USDRate,
		GBPRate:       m.GBPRate,
	}
}
