package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Gateway GatewayConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
}

// GatewayConfig holds NMI gateway configuration
type GatewayConfig struct {
	BaseURL  string // Transaction endpoint (default: production)
	TestMode bool   // Mark responses as test transactions (sandbox credentials)
	Timeout  int    // Request timeout in seconds (default: 30)
}

// SecretsConfig selects the credential backend
type SecretsConfig struct {
	// Backend: "env", "aws", or "vault"
	Backend string

	// Path of the credential document within the backend. For env this is
	// the variable name holding the JSON payload.
	Path string

	// AWS region (aws backend)
	Region string

	// Vault address and token (vault backend)
	VaultAddress string
	VaultToken   string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			BaseURL:  getEnv("NMI_BASE_URL", "https://secure.nmi.com/api/transact.php"),
			TestMode: getEnvAsBool("NMI_TEST_MODE", false),
			Timeout:  getEnvAsInt("NMI_TIMEOUT", 30),
		},
		Secrets: SecretsConfig{
			Backend:      getEnv("SECRETS_BACKEND", "env"),
			Path:         getEnv("SECRETS_PATH", "NMI_CREDENTIALS"),
			Region:       getEnv("AWS_REGION", "us-east-1"),
			VaultAddress: getEnv("VAULT_ADDR", ""),
			VaultToken:   getEnv("VAULT_TOKEN", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	switch cfg.Secrets.Backend {
	case "env", "aws":
	case "vault":
		if cfg.Secrets.VaultAddress == "" {
			return nil, fmt.Errorf("VAULT_ADDR is required for the vault backend")
		}
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Secrets.Backend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
