package ports

import "context"

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value    string            // The secret payload (JSON credential document)
	Version  string            // Secret version identifier, if the backend tracks one
	Metadata map[string]string // Additional backend-specific metadata
}

// SecretManager defines the port for retrieving gateway credentials from a
// secret management service. Implementations handle authentication with the
// backend and cache secrets with an appropriate TTL.
//
// Path format depends on the implementation:
//   - env:   name of the environment variable holding the payload
//   - AWS:   "nmi-gateway/credentials"
//   - Vault: KV path under the configured mount, e.g. "nmi-gateway/credentials"
type SecretManager interface {
	// GetSecret retrieves a secret by its path/name.
	// Returns an error if the secret does not exist, permissions are
	// insufficient, or the backend is unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
