package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kevin07696/nmi-gateway/internal/adapters/nmi"
	"github.com/kevin07696/nmi-gateway/internal/adapters/ports"
	"github.com/kevin07696/nmi-gateway/internal/adapters/secrets"
	"github.com/kevin07696/nmi-gateway/internal/config"
	"github.com/kevin07696/nmi-gateway/internal/domain"
	"github.com/kevin07696/nmi-gateway/pkg/security"
)

func main() {
	var (
		op          = flag.String("op", "verify", "operation: purchase, auth, verify, store")
		amountCents = flag.Int64("amount", 100, "amount in minor units (purchase/auth)")
		number      = flag.String("number", "4111111111111111", "card number")
		month       = flag.Int("month", 12, "card expiry month")
		year        = flag.Int("year", 2030, "card expiry year")
		cvv         = flag.String("cvv", "917", "card verification code")
		firstName   = flag.String("first", "Longbob", "cardholder first name")
		lastName    = flag.String("last", "Longsen", "cardholder last name")
		currency    = flag.String("currency", "USD", "transaction currency")
		description = flag.String("description", "nmi-gateway demo", "order description")
	)
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, err := security.NewLogger(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Gateway.Timeout)*time.Second)
	defer cancel()

	manager, err := newSecretManager(ctx, cfg, logger.Zap())
	if err != nil {
		logger.Error("failed to initialize secret backend", ports.Err(err))
		os.Exit(1)
	}

	credentials, err := secrets.LoadCredentials(ctx, manager, cfg.Secrets.Path)
	if err != nil {
		logger.Error("failed to load credentials", ports.Err(err))
		os.Exit(1)
	}

	gateway, err := nmi.NewGatewayWithDefaults(&nmi.Config{
		BaseURL:  cfg.Gateway.BaseURL,
		TestMode: cfg.Gateway.TestMode,
		Timeout:  time.Duration(cfg.Gateway.Timeout) * time.Second,
	}, credentials, logger)
	if err != nil {
		logger.Error("failed to construct gateway", ports.Err(err))
		os.Exit(1)
	}

	card := domain.CreditCard{
		FirstName: *firstName,
		LastName:  *lastName,
		Number:    *number,
		Month:     *month,
		Year:      *year,
		CVV:       *cvv,
	}
	opts := &nmi.TransactionOptions{
		OrderID:     uuid.NewString(),
		Currency:    *currency,
		Description: *description,
	}

	var resp *nmi.Response
	switch *op {
	case "purchase":
		resp, err = gateway.Purchase(ctx, *amountCents, card, opts)
	case "auth":
		resp, err = gateway.Authorize(ctx, *amountCents, card, opts)
	case "verify":
		resp, err = gateway.Verify(ctx, card, opts)
	case "store":
		resp, err = gateway.Store(ctx, card, opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q\n", *op)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("operation failed", ports.String("operation", *op), ports.Err(err))
		os.Exit(1)
	}

	logger.Info("operation complete",
		ports.String("operation", *op),
		ports.Bool("success", resp.Success),
		ports.String("message", resp.Message),
		ports.String("authorization", resp.Authorization),
	)
	fmt.Printf("success=%v message=%q authorization=%q\n", resp.Success, resp.Message, resp.Authorization)
}

func newSecretManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretManager, error) {
	switch cfg.Secrets.Backend {
	case "aws":
		return secrets.NewAWSSecretsManagerAdapter(ctx,
			secrets.DefaultAWSSecretsManagerConfig(cfg.Secrets.Region), logger)
	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddress)
		vaultCfg.Token = cfg.Secrets.VaultToken
		return secrets.NewVaultAdapter(vaultCfg, logger)
	default:
		return secrets.NewEnvSecretManager(), nil
	}
}
