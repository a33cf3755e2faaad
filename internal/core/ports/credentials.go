package ports

import "context"

// CredentialStore hands out the opaque API secret for a provider. Decryption
// and storage of credential material happen outside the core; the store is
// initialized once at process start and injected into whatever needs it.
type CredentialStore interface {
	// APIKey returns the decrypted API key for the named provider. A
	// provider without a configured key gets an empty string and no error;
	// adapters that require a key treat that as an auth failure.
	APIKey(ctx context.Context, providerName string) (string, error)
}
