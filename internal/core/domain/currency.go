package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
}

// BaseCurrency is the currency all stored rates are expressed against.
// It is never persisted as a rate itself; its rate is defined as exactly 1.
const BaseCurrency = "EUR"

// Supported currency codes.
const (
	CurrencyEUR = "EUR"
	CurrencyCHF = "CHF"
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
)

// SupportedCurrencies is the set of currencies rates are stored for,
// relative to the base. Order matters for deterministic iteration.
var SupportedCurrencies = []string{CurrencyCHF, CurrencyUSD, CurrencyGBP}

// IsSupportedCurrency reports whether code is one of the stored currencies
// (the base currency is not included; it is implicit).
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
