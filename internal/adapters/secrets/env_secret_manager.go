package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/kevin07696/nmi-gateway/internal/adapters/ports"
)

// envSecretManager implements the SecretManager port over environment
// variables. For local development only; use AWS Secrets Manager or Vault
// in production.
type envSecretManager struct{}

// NewEnvSecretManager creates a secret manager that resolves paths as
// environment variable names.
func NewEnvSecretManager() ports.SecretManager {
	return envSecretManager{}
}

func (envSecretManager) GetSecret(_ context.Context, path string) (*ports.Secret, error) {
	value, ok := os.LookupEnv(path)
	if !ok || value == "" {
		return nil, fmt.Errorf("secret %q not found in environment", path)
	}
	return &ports.Secret{Value: value}, nil
}
