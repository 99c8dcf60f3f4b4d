package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/kevin07696/nmi-gateway/internal/adapters/ports"
)

// VaultConfig contains configuration for the HashiCorp Vault adapter.
type VaultConfig struct {
	// Vault server address (e.g., "https://vault.example.com:8200")
	Address string

	// Token for token authentication
	Token string

	// Vault namespace (Vault Enterprise)
	Namespace string

	// KV v2 secrets engine mount path (default: "secret")
	MountPath string

	// Cache TTL
	CacheTTL time.Duration

	// Enable caching
	EnableCache bool
}

// DefaultVaultConfig returns default configuration for the Vault adapter
func DefaultVaultConfig(address string) *VaultConfig {
	return &VaultConfig{
		Address:     address,
		MountPath:   "secret",
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// vaultAdapter implements the SecretManager port for HashiCorp Vault KV v2.
type vaultAdapter struct {
	client *vault.Client
	config *VaultConfig
	logger *zap.Logger
	cache  *secretCache
}

// NewVaultAdapter creates a new HashiCorp Vault adapter
func NewVaultAdapter(cfg *VaultConfig, logger *zap.Logger) (ports.SecretManager, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("vault token is required")
	}
	client.SetToken(cfg.Token)

	logger.Info("Vault adapter initialized",
		zap.String("address", cfg.Address),
		zap.String("mount_path", cfg.MountPath),
	)

	return &vaultAdapter{
		client: client,
		config: cfg,
		logger: logger,
		cache:  newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}, nil
}

func (a *vaultAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if secret, ok := a.cache.get(path); ok {
		return secret, nil
	}

	kvSecret, err := a.client.KVv2(a.config.MountPath).Get(ctx, path)
	if err != nil {
		a.logger.Error("failed to retrieve secret",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to retrieve secret %q: %w", path, err)
	}

	// The KV data map is the credential document; re-encode it so every
	// backend hands the same JSON payload to the credential parser.
	payload, err := json.Marshal(kvSecret.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode secret %q: %w", path, err)
	}

	secret := &ports.Secret{
		Value:   string(payload),
		Version: strconv.Itoa(kvSecret.VersionMetadata.Version),
	}
	a.cache.put(path, secret)

	return secret, nil
}
