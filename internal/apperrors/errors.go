package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStore indicates a failure in the durable storage layer. Write-path
// callers must propagate it; read-path callers may degrade to a miss.
var ErrStore = errors.New("storage error")

// ErrInvalidAmount indicates a conversion amount that is zero or negative.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrSameCurrency indicates an identity conversion, which is rejected
// rather than short-circuited.
var ErrSameCurrency = errors.New("same currency conversion requested")

// ErrRateUnavailable indicates that no exchange rate could be resolved for
// the requested pair, even after the provider fallback.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrNoProviders indicates that the provider registry holds no active entries.
var ErrNoProviders = errors.New("no active providers available")

// ErrAllProvidersFailed indicates that every active provider was tried and
// none produced a usable rate.
var ErrAllProvidersFailed = errors.New("all providers failed to fetch exchange rates")

// ErrInvalidPriority indicates a provider priority outside [1, countActive].
var ErrInvalidPriority = errors.New("invalid provider priority")

// ErrMissingRate indicates that a rate record lacks the requested currency.
var ErrMissingRate = errors.New("missing exchange rate for currency")

// ErrDivisionByZero indicates a zero rate inside a return-series computation.
var ErrDivisionByZero = errors.New("zero exchange rate encountered, division by zero prevented")

// ErrBaseCurrencyReturn indicates a return-series request against the base
// currency itself; the return would be trivially zero.
var ErrBaseCurrencyReturn = errors.New("target currency cannot be the base currency")

// ErrInvalidDateRange indicates a date range that violates a service
// precondition, e.g. a start date that is not before today.
var ErrInvalidDateRange = errors.New("invalid date range")

// ProviderErrorKind distinguishes the ways an upstream provider can fail.
type ProviderErrorKind int

const (
	// ProviderErrTransport covers network failures, timeouts and non-2xx
	// responses without a parseable API error.
	ProviderErrTransport ProviderErrorKind = iota
	// ProviderErrAuth covers rejected or missing credentials.
	ProviderErrAuth
	// ProviderErrMalformed covers responses that cannot be interpreted.
	ProviderErrMalformed
)

func (k ProviderErrorKind) String() string {
	switch k {
	case ProviderErrTransport:
		return "transport"
	case ProviderErrAuth:
		return "auth"
	case ProviderErrMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ProviderError reports a failure of a single upstream rate provider. It
// carries the provider name and a kind so that the resolver can log a
// distinguishable reason before moving on to the next provider.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s failure: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s: %s failure", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a ProviderError of the given kind.
func NewProviderError(provider string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

// AsProviderError unwraps err into a *ProviderError if possible.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
