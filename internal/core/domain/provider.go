package domain

import "time"

// Provider is one upstream rate source. Among active providers, Priority
// values form a dense permutation of 1..N: no gaps, no duplicates, lower
// value means tried earlier.
type Provider struct {
	ProviderID         string     `json:"providerID"` // Primary Key (e.g., UUID)
	Name               string     `json:"name"`       // Unique human-readable name
	Priority           int        `json:"priority"`
	Active             bool       `json:"active"`
	CurrentRatesURL    string     `json:"currentRatesURL"`
	HistoricalRatesURL string     `json:"historicalRatesURL"` // URL template with a {date} placeholder
	AdapterRef         string     `json:"adapterRef"`         // Symbolic adapter identifier, resolved via the adapter registry
	LastFailure        *time.Time `json:"lastFailure,omitempty"`
}
