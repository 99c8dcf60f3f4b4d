package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://secure.nmi.com/api/transact.php", cfg.Gateway.BaseURL)
	assert.False(t, cfg.Gateway.TestMode)
	assert.Equal(t, 30, cfg.Gateway.Timeout)
	assert.Equal(t, "env", cfg.Secrets.Backend)
	assert.Equal(t, "NMI_CREDENTIALS", cfg.Secrets.Path)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("NMI_BASE_URL", "https://sandbox.example.com/api/transact.php")
	t.Setenv("NMI_TEST_MODE", "true")
	t.Setenv("NMI_TIMEOUT", "10")
	t.Setenv("SECRETS_BACKEND", "aws")
	t.Setenv("SECRETS_PATH", "nmi/prod/credentials")
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.example.com/api/transact.php", cfg.Gateway.BaseURL)
	assert.True(t, cfg.Gateway.TestMode)
	assert.Equal(t, 10, cfg.Gateway.Timeout)
	assert.Equal(t, "aws", cfg.Secrets.Backend)
	assert.Equal(t, "nmi/prod/credentials", cfg.Secrets.Path)
	assert.Equal(t, "us-west-2", cfg.Secrets.Region)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFromEnvUnknownBackend(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "consul")

	_, err := LoadFromEnv()
	assert.ErrorContains(t, err, "unknown secrets backend")
}

func TestLoadFromEnvVaultRequiresAddress(t *testing.T) {
	t.Setenv("SECRETS_BACKEND", "vault")
	t.Setenv("VAULT_ADDR", "")

	_, err := LoadFromEnv()
	assert.ErrorContains(t, err, "VAULT_ADDR")

	t.Setenv("VAULT_ADDR", "https://vault.example.com:8200")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://vault.example.com:8200", cfg.Secrets.VaultAddress)
}

func TestLoadFromEnvMalformedValuesFallBack(t *testing.T) {
	t.Setenv("NMI_TIMEOUT", "not-a-number")
	t.Setenv("NMI_TEST_MODE", "maybe")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Gateway.Timeout)
	assert.False(t, cfg.Gateway.TestMode)
}
