package models

import "time"

// Provider stores one upstream rate source, e.g. Fixer.io or the built-in
// simulated source.
type Provider struct {
	ProviderID         string     `json:"providerID"` // Primary Key (e.g., UUID)
	Name               string     `json:"name"`       // Unique
	Priority           int        `json:"priority"`   // Lower values = higher priority
	Active             bool       `json:"active"`
	CurrentRatesURL    string     `json:"currentRatesURL"`
	HistoricalRatesURL string     `json:"historicalRatesURL"`
	AdapterRef         string     `json:"adapterRef"`
	LastFailure        *time.Time `json:"lastFailure,omitempty"`
}
