// Package credentials provides the credential-store collaborator handed to
// the provider registry. Secrets arrive here already decrypted; this core
// never performs encryption or decryption itself.
package credentials

import (
	"context"
	"os"
	"strings"
)

// envKeyPrefix prefixes the environment variable holding a provider's API
// key; the provider name is upper-cased with non-alphanumerics folded to
// underscores, e.g. "Fixer.io" -> RATES_PROVIDER_APIKEY_FIXER_IO.
const envKeyPrefix = "RATES_PROVIDER_APIKEY_"

// EnvStore resolves provider API keys from process environment variables.
// It is constructed once at startup and injected wherever needed.
type EnvStore struct{}

// NewEnvStore creates a new environment-backed credential store.
func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

// APIKey returns the configured key for the named provider, or an empty
// string when none is set.
func (s *EnvStore) APIKey(_ context.Context, providerName string) (string, error) {
	return os.Getenv(envKeyPrefix + normalizeName(providerName)), nil
}

func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
