package nmi

import (
	"net/url"
	"strings"

	"github.com/kevin07696/nmi-gateway/internal/domain"
	pkgerrors "github.com/kevin07696/nmi-gateway/pkg/errors"
)

// Response is the normalized result of one gateway operation. It is
// constructed once per call and never mutated afterwards.
type Response struct {
	// Success reflects the processor's response classification: the numeric
	// response field equal to "1". Any other value is a decline or error
	// surfaced through Message, not a Go error.
	Success bool

	// Message is the responsetext field verbatim.
	Message string

	// Authorization is the opaque token referencing this transaction in
	// follow-up operations. For vault operations it references the vault
	// customer id instead of a transaction id.
	Authorization string

	TransactionID string
	AuthCode      string
	OrderID       string

	// AVSCode and CVVCode may be blank; absence is legal, not an error.
	AVSCode string
	CVVCode string

	// ResponseCode is the processor's detailed numeric code (100, 200, ...).
	ResponseCode string

	// VaultID is set by customer vault operations.
	VaultID string

	// Test is true when the gateway instance is configured with sandbox
	// credentials. Informational only.
	Test bool

	// Params is the full parsed response mapping.
	Params map[string]string
}

// parseResponse decodes the flat key=value response body and classifies it.
// kind is the payment method kind threaded through from the request side;
// the body itself carries no instrument information.
func parseResponse(body []byte, act action, kind domain.MethodKind, testMode bool) (*Response, error) {
	params, err := parseParams(string(body))
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Success:       params["response"] == "1",
		Message:       params["responsetext"],
		TransactionID: params["transactionid"],
		AuthCode:      params["authcode"],
		OrderID:       params["orderid"],
		AVSCode:       params["avsresponse"],
		CVVCode:       params["cvvresponse"],
		ResponseCode:  params["response_code"],
		VaultID:       params["customer_vault_id"],
		Test:          testMode,
		Params:        params,
	}

	if resp.Success {
		if act.isVault() {
			resp.Authorization = EncodeAuthorization(resp.VaultID, kind)
		} else {
			resp.Authorization = EncodeAuthorization(resp.TransactionID, kind)
		}
	}

	return resp, nil
}

// parseParams decodes a &-joined key=value body. Values are url-decoded,
// blank values are legal, and duplicate keys resolve to the last occurrence.
// A body that is not decodable as flat key/value pairs is an explicit parse
// error - never a silent false-success.
func parseParams(body string) (map[string]string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, pkgerrors.NewParseError("empty response body")
	}
	if !strings.Contains(trimmed, "=") {
		return nil, pkgerrors.NewParseError("response body is not key/value encoded")
	}

	params := make(map[string]string)
	for _, pair := range strings.Split(trimmed, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, pkgerrors.NewParseError("undecodable field name: " + rawKey)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, pkgerrors.NewParseError("undecodable value for field " + key)
		}
		if key == "" {
			continue
		}
		params[key] = value
	}
	return params, nil
}
