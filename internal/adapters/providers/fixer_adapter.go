package providers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fxdesk/exchange_system/internal/apperrors"
	"github.com/fxdesk/exchange_system/internal/core/domain"
	"github.com/fxdesk/exchange_system/internal/core/ports"
	"github.com/fxdesk/exchange_system/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// datePlaceholder is substituted into a provider's historical URL template.
const datePlaceholder = "{date}"

// FixerAdapter retrieves exchange rates from a Fixer.io-style API. The free
// tier serves EUR-based rates only, which matches the storage model here.
type FixerAdapter struct {
	provider domain.Provider
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// FixerFactory returns a registry factory building FixerAdapter instances
// that share the given HTTP client. The client's timeout bounds every
// upstream call.
func FixerFactory(client *http.Client, logger *slog.Logger) Factory {
	return func(provider domain.Provider, apiKey string) (ports.RateProviderAdapter, error) {
		if client == nil {
			return nil, fmt.Errorf("fixer adapter requires an HTTP client")
		}
		return &FixerAdapter{
			provider: provider,
			apiKey:   apiKey,
			client:   client,
			logger:   logger,
		}, nil
	}
}

// FetchRates fetches the latest rates when date is nil, or the historical
// rates for the given calendar day otherwise.
func (a *FixerAdapter) FetchRates(ctx context.Context, baseCurrency string, date *time.Time) (*dto.ProviderRates, error) {
	if a.apiKey == "" {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrAuth,
			fmt.Errorf("no API key configured"))
	}

	requestURL := a.provider.CurrentRatesURL
	today := time.Now().Format(domain.DateLayout)
	if date != nil && date.Format(domain.DateLayout) != today {
		requestURL = strings.ReplaceAll(a.provider.HistoricalRatesURL, datePlaceholder, date.Format(domain.DateLayout))
	}

	body, err := a.makeRequest(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		return nil, a.translateAPIError(body)
	}

	rates, err := a.extractRates(body)
	if err != nil {
		return nil, err
	}

	payloadDate, err := time.Parse(domain.DateLayout, gjson.GetBytes(body, "date").String())
	if err != nil {
		// Some plans omit the date field on latest-rate responses; fall
		// back to the requested day.
		if date != nil {
			payloadDate = *date
		} else {
			payloadDate = time.Now().UTC().Truncate(24 * time.Hour)
		}
	}

	return &dto.ProviderRates{
		Timestamp: gjson.GetBytes(body, "timestamp").Int(),
		Date:      payloadDate,
		Base:      domain.BaseCurrency,
		Rates:     rates,
	}, nil
}

// makeRequest performs the HTTP GET and returns the raw body. Transport and
// HTTP-status failures come back as transport-kind provider errors.
func (a *FixerAdapter) makeRequest(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrMalformed,
			fmt.Errorf("invalid rates URL: %w", err))
	}
	query := parsed.Query()
	query.Set("access_key", a.apiKey)
	// The free tier requires EUR as base; the storage model matches.
	query.Set("base", domain.BaseCurrency)
	parsed.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrTransport, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrTransport, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrAuth,
			fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrTransport,
			fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}
	return body, nil
}

// translateAPIError maps a Fixer API-level error payload onto the provider
// error taxonomy. Access-key problems are auth failures; anything else from
// a well-formed error block is treated as malformed input to this system.
func (a *FixerAdapter) translateAPIError(body []byte) error {
	errType := gjson.GetBytes(body, "error.type").String()
	errInfo := gjson.GetBytes(body, "error.info").String()
	errCode := gjson.GetBytes(body, "error.code").Int()

	kind := apperrors.ProviderErrMalformed
	if strings.Contains(errType, "access_key") || errCode == 101 || errCode == 102 || errCode == 105 {
		kind = apperrors.ProviderErrAuth
	}
	if errInfo == "" {
		errInfo = errType
	}
	if a.logger != nil {
		a.logger.Warn("Fixer API error",
			slog.String("provider", a.provider.Name),
			slog.Int64("code", errCode),
			slog.String("type", errType))
	}
	return apperrors.NewProviderError(a.provider.Name, kind, fmt.Errorf("API error: %s", errInfo))
}

// extractRates filters the payload down to the supported currency set.
// An unsupported or missing symbol is simply absent from the result.
func (a *FixerAdapter) extractRates(body []byte) (map[string]decimal.Decimal, error) {
	node := gjson.GetBytes(body, "rates")
	if !node.Exists() || !node.IsObject() {
		return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrMalformed,
			fmt.Errorf("response has no rates object"))
	}

	rates := make(map[string]decimal.Decimal, len(domain.SupportedCurrencies))
	for _, symbol := range domain.SupportedCurrencies {
		value := node.Get(symbol)
		if !value.Exists() {
			continue
		}
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			return nil, apperrors.NewProviderError(a.provider.Name, apperrors.ProviderErrMalformed,
				fmt.Errorf("unparseable rate for %s: %w", symbol, err))
		}
		rates[symbol] = rate
	}
	return rates, nil
}
