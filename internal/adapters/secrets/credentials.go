package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevin07696/nmi-gateway/internal/adapters/nmi"
	"github.com/kevin07696/nmi-gateway/internal/adapters/ports"
)

// credentialDocument is the JSON payload stored in the secret backend:
// either {"security_key": "..."} or {"login": "...", "password": "..."}.
type credentialDocument struct {
	Login       string `json:"login"`
	Password    string `json:"password"`
	SecurityKey string `json:"security_key"`
}

// ParseCredentials decodes a credential document into gateway credentials.
// Mode validation (exactly one of security key or login/password) happens at
// gateway construction, not here.
func ParseCredentials(raw string) (nmi.Credentials, error) {
	var doc credentialDocument
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return nmi.Credentials{}, fmt.Errorf("failed to decode credential document: %w", err)
	}
	return nmi.Credentials{
		Login:       doc.Login,
		Password:    doc.Password,
		SecurityKey: doc.SecurityKey,
	}, nil
}

// LoadCredentials fetches and decodes gateway credentials from a secret
// backend.
func LoadCredentials(ctx context.Context, manager ports.SecretManager, path string) (nmi.Credentials, error) {
	secret, err := manager.GetSecret(ctx, path)
	if err != nil {
		return nmi.Credentials{}, fmt.Errorf("failed to load gateway credentials: %w", err)
	}
	return ParseCredentials(secret.Value)
}
