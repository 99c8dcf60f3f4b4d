package nmi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionOptions is the bag of optional transaction attributes. Every
// field is presence-driven: the zero value (empty string, nil pointer,
// invalid NullDecimal) means "absent" and is never emitted on the wire.
// Numeric options use pointers or NullDecimal so an explicit zero can still
// be sent.
type TransactionOptions struct {
	OrderID     string
	Description string
	Currency    string
	CustomerID  string
	PONumber    string

	// DupSeconds is the processor-side duplicate detection window.
	DupSeconds *int

	Tax       decimal.NullDecimal
	Shipping  decimal.NullDecimal
	Surcharge decimal.NullDecimal

	// Recurring emits billing_method=recurring. A StoredCredential, when
	// present, takes precedence over this flag.
	Recurring bool

	ShippingAddress *Address
	ShippingEmail   string

	Descriptors  *Descriptors
	ThreeDSecure *ThreeDSecure

	StoredCredential *StoredCredential

	// NetworkTransactionID maps through independently of the stored
	// credential block.
	NetworkTransactionID string

	// MerchantDefinedFields emits merchant_defined_field_<index>=<value>.
	MerchantDefinedFields map[int]string
}

// Address is a shipping destination.
type Address struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	State    string
	Country  string
	Zip      string
}

// Descriptors carries the soft descriptor overrides shown on the
// cardholder's statement.
type Descriptors struct {
	Descriptor string
	Phone      string
	Address    string
	City       string
	State      string
	Postal     string
	Country    string
	MCC        string
	MerchantID string
	URL        string
}

// ThreeDSecure carries the 3-D Secure authentication results collected by an
// external MPI/SCA provider.
type ThreeDSecure struct {
	Version string
	// AuthenticationResponseStatus is the directory server verdict:
	// "Y" (verified) or "A" (attempted). Any other value suppresses the
	// cardholder_auth field.
	AuthenticationResponseStatus string
	CAVV                         string
	DSTransactionID              string
	XID                          string
}

// Initiator says who triggered a stored-credential transaction.
type Initiator string

const (
	InitiatorCardholder Initiator = "cardholder"
	InitiatorMerchant   Initiator = "merchant"
)

// ReasonType classifies why a stored credential is being used.
type ReasonType string

const (
	ReasonRecurring   ReasonType = "recurring"
	ReasonInstallment ReasonType = "installment"
	ReasonUnscheduled ReasonType = "unscheduled"
)

// StoredCredential describes reuse of a previously stored payment
// credential (card-on-file framework mandated by the card networks).
type StoredCredential struct {
	Initiator  Initiator
	ReasonType ReasonType

	// InitialTransaction marks the first use of the credential.
	InitialTransaction bool

	// NetworkTransactionID references the network id of the initial
	// transaction when the credential is being reused.
	NetworkTransactionID string
}

// addOptions folds the options bag into the flat parameter set. Each rule is
// independent; absent options never produce a field. The stored-credential
// block is folded last so its billing_method derivation wins over the plain
// Recurring flag.
func addOptions(data url.Values, opts *TransactionOptions) {
	if opts == nil {
		return
	}

	if opts.Recurring {
		data.Set("billing_method", "recurring")
	}
	if opts.OrderID != "" {
		data.Set("orderid", opts.OrderID)
	}
	if opts.Description != "" {
		data.Set("orderdescription", opts.Description)
	}
	if opts.Currency != "" {
		data.Set("currency", opts.Currency)
	}
	if opts.DupSeconds != nil {
		data.Set("dup_seconds", strconv.Itoa(*opts.DupSeconds))
	}
	if opts.CustomerID != "" {
		data.Set("customer_id", opts.CustomerID)
	}
	if opts.Tax.Valid {
		data.Set("tax", opts.Tax.Decimal.String())
	}
	if opts.Shipping.Valid {
		data.Set("shipping", opts.Shipping.Decimal.String())
	}
	if opts.PONumber != "" {
		data.Set("ponumber", opts.PONumber)
	}
	if opts.Surcharge.Valid {
		data.Set("surcharge", opts.Surcharge.Decimal.String())
	}
	if opts.NetworkTransactionID != "" {
		data.Set("network_transaction_id", opts.NetworkTransactionID)
	}

	addShipping(data, opts)
	addDescriptors(data, opts.Descriptors)
	addThreeDSecure(data, opts.ThreeDSecure)
	addStoredCredential(data, opts.StoredCredential)

	for index, value := range opts.MerchantDefinedFields {
		if value != "" {
			data.Set(fmt.Sprintf("merchant_defined_field_%d", index), value)
		}
	}
}

func addShipping(data url.Values, opts *TransactionOptions) {
	if addr := opts.ShippingAddress; addr != nil {
		// A blank name omits both name fields together, never partially
		if first, last, ok := splitName(addr.Name); ok {
			if first != "" {
				data.Set("shipping_firstname", first)
			}
			data.Set("shipping_lastname", last)
		}
		setIfPresent(data, "shipping_address1", addr.Address1)
		setIfPresent(data, "shipping_address2", addr.Address2)
		setIfPresent(data, "shipping_city", addr.City)
		setIfPresent(data, "shipping_state", addr.State)
		setIfPresent(data, "shipping_country", addr.Country)
		setIfPresent(data, "shipping_zip", addr.Zip)
	}
	setIfPresent(data, "shipping_email", opts.ShippingEmail)
}

func addDescriptors(data url.Values, d *Descriptors) {
	if d == nil {
		return
	}
	setIfPresent(data, "descriptor", d.Descriptor)
	setIfPresent(data, "descriptor_phone", d.Phone)
	setIfPresent(data, "descriptor_address", d.Address)
	setIfPresent(data, "descriptor_city", d.City)
	setIfPresent(data, "descriptor_state", d.State)
	setIfPresent(data, "descriptor_postal", d.Postal)
	setIfPresent(data, "descriptor_country", d.Country)
	setIfPresent(data, "descriptor_mcc", d.MCC)
	setIfPresent(data, "descriptor_merchant_id", d.MerchantID)
	setIfPresent(data, "descriptor_url", d.URL)
}

func addThreeDSecure(data url.Values, tds *ThreeDSecure) {
	if tds == nil {
		return
	}
	setIfPresent(data, "three_ds_version", tds.Version)
	setIfPresent(data, "cavv", tds.CAVV)
	setIfPresent(data, "directory_server_id", tds.DSTransactionID)
	setIfPresent(data, "xid", tds.XID)

	switch tds.AuthenticationResponseStatus {
	case "Y":
		data.Set("cardholder_auth", "verified")
	case "A":
		data.Set("cardholder_auth", "attempted")
	}
}

func addStoredCredential(data url.Values, sc *StoredCredential) {
	if sc == nil {
		return
	}

	if sc.Initiator == InitiatorCardholder {
		data.Set("initiated_by", "customer")
	} else {
		data.Set("initiated_by", "merchant")
	}

	switch sc.ReasonType {
	case ReasonRecurring:
		data.Set("billing_method", "recurring")
	case ReasonInstallment:
		data.Set("billing_method", "installment")
	case ReasonUnscheduled:
		// unscheduled never rides a billing method, even one set by the
		// plain Recurring flag
		data.Del("billing_method")
	}

	if sc.InitialTransaction {
		data.Set("stored_credential_indicator", "stored")
	} else {
		data.Set("stored_credential_indicator", "used")
		// Only merchant-initiated reuse references the initial transaction
		if sc.Initiator == InitiatorMerchant && sc.NetworkTransactionID != "" {
			data.Set("initial_transaction_id", sc.NetworkTransactionID)
		}
	}
}

func setIfPresent(data url.Values, key, value string) {
	if value != "" {
		data.Set(key, value)
	}
}

// splitName splits a free-form full name into first and last. The last
// whitespace-separated token becomes the last name; everything before it
// joins into the first name. ok is false for blank names.
func splitName(name string) (first, last string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}
