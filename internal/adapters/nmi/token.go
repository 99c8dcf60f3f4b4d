package nmi

import (
	"strings"

	"github.com/kevin07696/nmi-gateway/internal/domain"
)

// Authorization tokens pack the processor-assigned transaction id together
// with the payment method kind, so referencing operations can be driven from
// the token alone: "2762787830#creditcard".

// EncodeAuthorization builds an opaque authorization token for follow-up
// operations. Pure function, no failure mode.
func EncodeAuthorization(transactionID string, kind domain.MethodKind) string {
	if kind == domain.MethodKindUnknown {
		return transactionID
	}
	return transactionID + "#" + string(kind)
}

// DecodeAuthorization splits a token back into transaction id and method
// kind. The split happens on the last '#' so transaction ids that contain
// the separator still decode. Tokens without a recognizable kind suffix
// (legacy format) decode to the whole string with MethodKindUnknown; the
// referencing operations only strictly need the transaction id.
func DecodeAuthorization(token string) (string, domain.MethodKind) {
	idx := strings.LastIndex(token, "#")
	if idx < 0 {
		return token, domain.MethodKindUnknown
	}

	kind := domain.ParseMethodKind(token[idx+1:])
	if kind == domain.MethodKindUnknown {
		return token, domain.MethodKindUnknown
	}
	return token[:idx], kind
}
