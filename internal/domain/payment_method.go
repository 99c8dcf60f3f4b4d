package domain

import "strings"

// MethodKind identifies the payment instrument family on the wire.
// The gateway tags authorizations with the kind so follow-up operations
// (capture, refund, void) know what produced the original transaction.
type MethodKind string

const (
	MethodKindCreditCard MethodKind = "creditcard"
	MethodKindCheck      MethodKind = "check"

	// MethodKindUnknown is returned when an authorization token carries no
	// recognizable kind suffix (legacy tokens, hand-built references).
	MethodKindUnknown MethodKind = ""
)

// ParseMethodKind maps a token suffix back to a MethodKind.
// Unrecognized suffixes yield MethodKindUnknown, never an error.
func ParseMethodKind(s string) MethodKind {
	switch MethodKind(s) {
	case MethodKindCreditCard:
		return MethodKindCreditCard
	case MethodKindCheck:
		return MethodKindCheck
	default:
		return MethodKindUnknown
	}
}

// PaymentMethod is the tagged union of payment instruments accepted by the
// gateway. Exactly one concrete variant is used per transaction.
type PaymentMethod interface {
	Kind() MethodKind
}

// CreditCard is a raw card instrument. The adapter performs no checksum or
// expiry validation; malformed cards are rejected by the processor.
type CreditCard struct {
	FirstName string
	LastName  string
	Number    string
	Month     int // 1-12
	Year      int // four digits
	CVV       string
}

func (CreditCard) Kind() MethodKind { return MethodKindCreditCard }

// AccountHolderType distinguishes personal from business bank accounts.
type AccountHolderType string

const (
	HolderTypePersonal AccountHolderType = "personal"
	HolderTypeBusiness AccountHolderType = "business"
)

// AccountType distinguishes checking from savings accounts.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// ECheck is a bank-account instrument for ACH debits.
type ECheck struct {
	FirstName         string
	LastName          string
	RoutingNumber     string
	AccountNumber     string
	AccountHolderType AccountHolderType
	AccountType       AccountType
}

func (ECheck) Kind() MethodKind { return MethodKindCheck }

// Name returns the account holder's full name as printed on the check.
func (e ECheck) Name() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
