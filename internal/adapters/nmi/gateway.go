package nmi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kevin07696/nmi-gateway/internal/adapters/ports"
	"github.com/kevin07696/nmi-gateway/internal/domain"
	pkgerrors "github.com/kevin07696/nmi-gateway/pkg/errors"
	pkghttp "github.com/kevin07696/nmi-gateway/pkg/http"
	"github.com/kevin07696/nmi-gateway/pkg/observability"
)

// DefaultBaseURL is the production transaction endpoint.
const DefaultBaseURL = "https://secure.nmi.com/api/transact.php"

// Processor coverage, exposed for callers that route by card brand.
var (
	SupportedCountries = []string{"US"}
	SupportedCardTypes = []string{"visa", "master", "american_express", "discover"}
)

// Credentials authenticates every request. Exactly one mode is used: either
// Login+Password or SecurityKey, fixed at gateway construction.
type Credentials struct {
	Login       string
	Password    string
	SecurityKey string
}

func (c Credentials) validate() error {
	hasKey := c.SecurityKey != ""
	hasLogin := c.Login != "" || c.Password != ""

	switch {
	case hasKey && hasLogin:
		return pkgerrors.NewValidationError("credentials", "security_key and username/password are mutually exclusive")
	case hasKey:
		return nil
	case c.Login != "" && c.Password != "":
		return nil
	default:
		return pkgerrors.NewValidationError("credentials", "either security_key or login and password are required")
	}
}

// Config contains gateway-instance configuration, read-only after
// construction.
type Config struct {
	// BaseURL is the transaction endpoint.
	BaseURL string

	// TestMode marks responses from this instance as test transactions.
	// Set it together with sandbox credentials.
	TestMode bool

	// Timeout bounds each request when the default HTTP client is used.
	Timeout time.Duration
}

// DefaultConfig returns production endpoint configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Gateway is a client adapter for the NMI key/value transaction API. The
// instance holds only immutable configuration, so a single Gateway is safe
// for concurrent reuse across goroutines. Each operation is one independent
// request/response cycle: no retries, no shared call state.
type Gateway struct {
	config      *Config
	credentials Credentials
	httpClient  ports.HTTPClient
	logger      ports.Logger
}

// NewGateway creates a gateway with dependency injection.
func NewGateway(config *Config, credentials Credentials, httpClient ports.HTTPClient, logger ports.Logger) (*Gateway, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		return nil, pkgerrors.NewValidationError("base_url", "gateway endpoint is required")
	}
	if err := credentials.validate(); err != nil {
		return nil, err
	}

	return &Gateway{
		config:      config,
		credentials: credentials,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// NewGatewayWithDefaults creates a gateway with the tuned default HTTP
// client from pkg/http.
func NewGatewayWithDefaults(config *Config, credentials Credentials, logger ports.Logger) (*Gateway, error) {
	if config == nil {
		config = DefaultConfig()
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client := pkghttp.NewClient(pkghttp.GatewayClientConfig(), timeout)
	return NewGateway(config, credentials, client, logger)
}

// Purchase runs a combined authorization and capture (type=sale).
// amountCents is in minor units.
func (g *Gateway) Purchase(ctx context.Context, amountCents int64, method domain.PaymentMethod, opts *TransactionOptions) (*Response, error) {
	data := g.newRequest(actionSale)
	data.Set("amount", formatAmount(amountCents))
	addPaymentMethod(data, method)
	addOptions(data, opts)
	return g.commit(ctx, actionSale, method.Kind(), amountCents, data)
}

// Authorize places a hold without capturing (type=auth). The returned
// authorization token drives a later Capture or Void.
func (g *Gateway) Authorize(ctx context.Context, amountCents int64, method domain.PaymentMethod, opts *TransactionOptions) (*Response, error) {
	data := g.newRequest(actionAuth)
	data.Set("amount", formatAmount(amountCents))
	addPaymentMethod(data, method)
	addOptions(data, opts)
	return g.commit(ctx, actionAuth, method.Kind(), amountCents, data)
}

// Capture settles a previously authorized transaction. The authorization
// token's method-kind suffix is informational only; capture works from the
// transaction id alone.
func (g *Gateway) Capture(ctx context.Context, amountCents int64, authorization string) (*Response, error) {
	transactionID, kind := DecodeAuthorization(authorization)
	data := g.newRequest(actionCapture)
	data.Set("transactionid", transactionID)
	data.Set("amount", formatAmount(amountCents))
	return g.commit(ctx, actionCapture, kind, amountCents, data)
}

// Void cancels a transaction pending settlement.
func (g *Gateway) Void(ctx context.Context, authorization string) (*Response, error) {
	transactionID, kind := DecodeAuthorization(authorization)
	data := g.newRequest(actionVoid)
	data.Set("transactionid", transactionID)
	return g.commit(ctx, actionVoid, kind, 0, data)
}

// Refund returns settled funds to the original instrument.
func (g *Gateway) Refund(ctx context.Context, amountCents int64, authorization string) (*Response, error) {
	transactionID, kind := DecodeAuthorization(authorization)
	data := g.newRequest(actionRefund)
	data.Set("transactionid", transactionID)
	data.Set("amount", formatAmount(amountCents))
	return g.commit(ctx, actionRefund, kind, amountCents, data)
}

// Credit pushes funds to an instrument without a prior transaction.
func (g *Gateway) Credit(ctx context.Context, amountCents int64, method domain.PaymentMethod, opts *TransactionOptions) (*Response, error) {
	data := g.newRequest(actionCredit)
	data.Set("amount", formatAmount(amountCents))
	addPaymentMethod(data, method)
	addOptions(data, opts)
	return g.commit(ctx, actionCredit, method.Kind(), amountCents, data)
}

// Verify checks an instrument without moving money (type=validate, no
// amount).
func (g *Gateway) Verify(ctx context.Context, method domain.PaymentMethod, opts *TransactionOptions) (*Response, error) {
	data := g.newRequest(actionValidate)
	addPaymentMethod(data, method)
	addOptions(data, opts)
	return g.commit(ctx, actionValidate, method.Kind(), 0, data)
}

// Store tokenizes an instrument in the processor's customer vault. The
// returned authorization references the vault customer id, not a
// transaction.
func (g *Gateway) Store(ctx context.Context, method domain.PaymentMethod, opts *TransactionOptions) (*Response, error) {
	data := g.newRequest(actionAddCustomer)
	addPaymentMethod(data, method)
	addOptions(data, opts)
	return g.commit(ctx, actionAddCustomer, method.Kind(), 0, data)
}

// Unstore deletes a vaulted instrument. Accepts either a bare vault id or
// an authorization returned by Store.
func (g *Gateway) Unstore(ctx context.Context, authorization string) (*Response, error) {
	vaultID, kind := DecodeAuthorization(authorization)
	data := g.newRequest(actionDeleteCustomer)
	data.Set("customer_vault_id", vaultID)
	return g.commit(ctx, actionDeleteCustomer, kind, 0, data)
}

// commit executes exactly one request/response cycle. Transport and parse
// failures surface as errors; processor declines come back as a Response
// with Success=false.
func (g *Gateway) commit(ctx context.Context, act action, kind domain.MethodKind, amountCents int64, data url.Values) (*Response, error) {
	requestID := uuid.NewString()
	encoded := data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL, strings.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	g.logger.Debug("sending gateway request",
		ports.String("request_id", requestID),
		ports.String("operation", string(act)),
	)

	start := time.Now()
	httpResp, err := g.httpClient.Do(req)
	if err != nil {
		g.record(act, kind, "transport_error", start)
		g.logger.Error("gateway request failed",
			ports.String("request_id", requestID),
			ports.String("operation", string(act)),
			ports.Err(err),
		)
		return nil, pkgerrors.NewPaymentError("NETWORK_ERROR", "failed to connect to payment gateway", pkgerrors.CategoryNetworkError, true)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		g.record(act, kind, "transport_error", start)
		return nil, pkgerrors.NewPaymentError("READ_ERROR", "failed to read gateway response", pkgerrors.CategoryNetworkError, true)
	}

	if httpResp.StatusCode >= 500 {
		g.record(act, kind, "transport_error", start)
		return nil, pkgerrors.NewPaymentError("GATEWAY_ERROR", "payment gateway error", pkgerrors.CategorySystemError, true)
	}
	if httpResp.StatusCode >= 400 {
		g.record(act, kind, "transport_error", start)
		return nil, pkgerrors.NewPaymentError("REQUEST_ERROR", "invalid request to payment gateway", pkgerrors.CategoryInvalidRequest, false)
	}

	resp, err := parseResponse(body, act, kind, g.config.TestMode)
	if err != nil {
		g.record(act, kind, "parse_error", start)
		g.logger.Error("failed to parse gateway response",
			ports.String("request_id", requestID),
			ports.String("operation", string(act)),
			ports.Err(err),
		)
		return nil, err
	}

	result := "declined"
	if resp.Success {
		result = "approved"
		if amountCents > 0 {
			observability.RecordAmount(string(act), string(kind), amountCents)
		}
	}
	g.record(act, kind, result, start)

	g.logger.Info("gateway response",
		ports.String("request_id", requestID),
		ports.String("operation", string(act)),
		ports.Bool("success", resp.Success),
		ports.String("response_code", resp.ResponseCode),
		ports.String("transaction_id", resp.TransactionID),
		ports.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

func (g *Gateway) record(act action, kind domain.MethodKind, result string, start time.Time) {
	observability.RecordTransaction(string(act), string(kind), result, time.Since(start))
}
