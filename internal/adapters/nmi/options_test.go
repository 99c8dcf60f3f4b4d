package nmi

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullDecimal(t *testing.T, value string) decimal.NullDecimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return decimal.NewNullDecimal(d)
}

func intPtr(v int) *int { return &v }

func foldOptions(opts *TransactionOptions) url.Values {
	data := url.Values{}
	addOptions(data, opts)
	return data
}

func TestAddOptionsTransactionFields(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		OrderID:     "#1001",
		Description: "AM test",
		Currency:    "GBP",
		CustomerID:  "123",
		PONumber:    "1002",
		DupSeconds:  intPtr(15),
		Tax:         nullDecimal(t, "5.25"),
		Shipping:    nullDecimal(t, "10.51"),
		Recurring:   true,
	})

	assert.Equal(t, "#1001", data.Get("orderid"))
	assert.Equal(t, "AM test", data.Get("orderdescription"))
	assert.Equal(t, "GBP", data.Get("currency"))
	assert.Equal(t, "123", data.Get("customer_id"))
	assert.Equal(t, "1002", data.Get("ponumber"))
	assert.Equal(t, "15", data.Get("dup_seconds"))
	assert.Equal(t, "5.25", data.Get("tax"))
	assert.Equal(t, "10.51", data.Get("shipping"))
	assert.Equal(t, "recurring", data.Get("billing_method"))
}

func TestAddOptionsAbsentFieldsOmitted(t *testing.T) {
	assert.Empty(t, foldOptions(nil))
	assert.Empty(t, foldOptions(&TransactionOptions{}))
}

func TestAddOptionsSurcharge(t *testing.T) {
	data := foldOptions(&TransactionOptions{Surcharge: nullDecimal(t, "1.00")})
	assert.Equal(t, "1.00", data.Get("surcharge"))

	data = foldOptions(&TransactionOptions{})
	assert.NotContains(t, data, "surcharge")
}

func TestAddOptionsShippingAddress(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		ShippingAddress: &Address{
			Name:     "Jim Smith",
			Address1: "456 My Street",
			Address2: "Apt 1",
			City:     "Ottawa",
			State:    "ON",
			Country:  "CA",
			Zip:      "K1C2N6",
		},
		ShippingEmail: "test@example.com",
	})

	assert.Equal(t, "Jim", data.Get("shipping_firstname"))
	assert.Equal(t, "Smith", data.Get("shipping_lastname"))
	assert.Equal(t, "456 My Street", data.Get("shipping_address1"))
	assert.Equal(t, "Apt 1", data.Get("shipping_address2"))
	assert.Equal(t, "Ottawa", data.Get("shipping_city"))
	assert.Equal(t, "ON", data.Get("shipping_state"))
	assert.Equal(t, "CA", data.Get("shipping_country"))
	assert.Equal(t, "K1C2N6", data.Get("shipping_zip"))
	assert.Equal(t, "test@example.com", data.Get("shipping_email"))
}

func TestAddOptionsShippingNameSplitting(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		wantFirst string
		wantLast  string
	}{
		{"two tokens", "Jim Smith", "Jim", "Smith"},
		{"three tokens join into first", "Mary Jane Watson", "Mary Jane", "Watson"},
		{"single token becomes last name", "Cher", "", "Cher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := foldOptions(&TransactionOptions{
				ShippingAddress: &Address{Name: tt.fullName},
			})
			if tt.wantFirst == "" {
				assert.NotContains(t, data, "shipping_firstname")
			} else {
				assert.Equal(t, tt.wantFirst, data.Get("shipping_firstname"))
			}
			assert.Equal(t, tt.wantLast, data.Get("shipping_lastname"))
		})
	}
}

func TestAddOptionsBlankShippingNameOmitsBothFields(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		ShippingAddress: &Address{
			Name:     "   ",
			Address1: "456 My Street",
		},
	})

	assert.NotContains(t, data, "shipping_firstname")
	assert.NotContains(t, data, "shipping_lastname")
	assert.Equal(t, "456 My Street", data.Get("shipping_address1"))
}

func TestAddOptionsShippingEmailWithoutAddress(t *testing.T) {
	data := foldOptions(&TransactionOptions{ShippingEmail: "ship+to@example.com"})
	assert.Equal(t, "ship+to@example.com", data.Get("shipping_email"))
	// escaping happens at serialization time
	assert.Contains(t, data.Encode(), "shipping_email=ship%2Bto%40example.com")
}

func TestAddOptionsDescriptors(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		Descriptors: &Descriptors{
			Descriptor: "test",
			Phone:      "123",
			Address:    "address",
			City:       "city",
			State:      "state",
			Postal:     "postal",
			Country:    "country",
			MCC:        "mcc",
			MerchantID: "merchant_id",
			URL:        "url",
		},
	})

	assert.Equal(t, "test", data.Get("descriptor"))
	assert.Equal(t, "123", data.Get("descriptor_phone"))
	assert.Equal(t, "address", data.Get("descriptor_address"))
	assert.Equal(t, "city", data.Get("descriptor_city"))
	assert.Equal(t, "state", data.Get("descriptor_state"))
	assert.Equal(t, "postal", data.Get("descriptor_postal"))
	assert.Equal(t, "country", data.Get("descriptor_country"))
	assert.Equal(t, "mcc", data.Get("descriptor_mcc"))
	assert.Equal(t, "merchant_id", data.Get("descriptor_merchant_id"))
	assert.Equal(t, "url", data.Get("descriptor_url"))
}

func TestAddOptionsPartialDescriptors(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		Descriptors: &Descriptors{Descriptor: "test", Phone: "123"},
	})

	assert.Equal(t, "test", data.Get("descriptor"))
	assert.Equal(t, "123", data.Get("descriptor_phone"))
	assert.NotContains(t, data, "descriptor_address")
	assert.NotContains(t, data, "descriptor_url")
}

func TestAddOptionsThreeDSecure(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantAuth string
	}{
		{"verified", "Y", "verified"},
		{"attempted", "A", "attempted"},
		{"failed suppresses cardholder_auth", "N", ""},
		{"blank suppresses cardholder_auth", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := foldOptions(&TransactionOptions{
				ThreeDSecure: &ThreeDSecure{
					Version:                      "2.2.0",
					AuthenticationResponseStatus: tt.status,
					CAVV:                         "jEET5Odser3oCRAyNTY5BVgAAAA=",
					DSTransactionID:              "97267598-FAE6-48F2-8083-C23433990FBC",
					XID:                          "00000000000000000501",
				},
			})

			assert.Equal(t, "2.2.0", data.Get("three_ds_version"))
			assert.Equal(t, "jEET5Odser3oCRAyNTY5BVgAAAA=", data.Get("cavv"))
			assert.Equal(t, "97267598-FAE6-48F2-8083-C23433990FBC", data.Get("directory_server_id"))
			assert.Equal(t, "00000000000000000501", data.Get("xid"))
			if tt.wantAuth == "" {
				assert.NotContains(t, data, "cardholder_auth")
			} else {
				assert.Equal(t, tt.wantAuth, data.Get("cardholder_auth"))
			}
		})
	}
}

func TestAddOptionsStoredCredential(t *testing.T) {
	const networkID = "010081676031903"

	tests := []struct {
		name          string
		sc            StoredCredential
		wantInitiated string
		wantIndicator string
		wantBilling   string
		wantInitialID string
	}{
		{
			name:          "cit initial recurring",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonRecurring, InitialTransaction: true},
			wantInitiated: "customer",
			wantIndicator: "stored",
			wantBilling:   "recurring",
		},
		{
			name:          "cit used recurring never references initial transaction",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonRecurring, NetworkTransactionID: networkID},
			wantInitiated: "customer",
			wantIndicator: "used",
			wantBilling:   "recurring",
		},
		{
			name:          "cit initial installment",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonInstallment, InitialTransaction: true},
			wantInitiated: "customer",
			wantIndicator: "stored",
			wantBilling:   "installment",
		},
		{
			name:          "cit used installment",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonInstallment, NetworkTransactionID: networkID},
			wantInitiated: "customer",
			wantIndicator: "used",
			wantBilling:   "installment",
		},
		{
			name:          "cit initial unscheduled",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonUnscheduled, InitialTransaction: true},
			wantInitiated: "customer",
			wantIndicator: "stored",
		},
		{
			name:          "cit used unscheduled",
			sc:            StoredCredential{Initiator: InitiatorCardholder, ReasonType: ReasonUnscheduled, NetworkTransactionID: networkID},
			wantInitiated: "customer",
			wantIndicator: "used",
		},
		{
			name:          "mit initial recurring",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonRecurring, InitialTransaction: true},
			wantInitiated: "merchant",
			wantIndicator: "stored",
			wantBilling:   "recurring",
		},
		{
			name:          "mit used recurring",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonRecurring, NetworkTransactionID: networkID},
			wantInitiated: "merchant",
			wantIndicator: "used",
			wantBilling:   "recurring",
			wantInitialID: networkID,
		},
		{
			name:          "mit initial installment",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonInstallment, InitialTransaction: true},
			wantInitiated: "merchant",
			wantIndicator: "stored",
			wantBilling:   "installment",
		},
		{
			name:          "mit used installment",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonInstallment, NetworkTransactionID: networkID},
			wantInitiated: "merchant",
			wantIndicator: "used",
			wantBilling:   "installment",
			wantInitialID: networkID,
		},
		{
			name:          "mit initial unscheduled",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonUnscheduled, InitialTransaction: true},
			wantInitiated: "merchant",
			wantIndicator: "stored",
		},
		{
			name:          "mit used unscheduled",
			sc:            StoredCredential{Initiator: InitiatorMerchant, ReasonType: ReasonUnscheduled, NetworkTransactionID: networkID},
			wantInitiated: "merchant",
			wantIndicator: "used",
			wantInitialID: networkID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := tt.sc
			data := foldOptions(&TransactionOptions{StoredCredential: &sc})

			assert.Equal(t, tt.wantInitiated, data.Get("initiated_by"))
			assert.Equal(t, tt.wantIndicator, data.Get("stored_credential_indicator"))
			if tt.wantBilling == "" {
				assert.NotContains(t, data, "billing_method")
			} else {
				assert.Equal(t, tt.wantBilling, data.Get("billing_method"))
			}
			if tt.wantInitialID == "" {
				assert.NotContains(t, data, "initial_transaction_id")
			} else {
				assert.Equal(t, tt.wantInitialID, data.Get("initial_transaction_id"))
			}
		})
	}
}

func TestStoredCredentialOverridesRecurringFlag(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		Recurring: true,
		StoredCredential: &StoredCredential{
			Initiator:          InitiatorCardholder,
			ReasonType:         ReasonInstallment,
			InitialTransaction: true,
		},
	})
	assert.Equal(t, "installment", data.Get("billing_method"))

	data = foldOptions(&TransactionOptions{
		Recurring: true,
		StoredCredential: &StoredCredential{
			Initiator:          InitiatorCardholder,
			ReasonType:         ReasonUnscheduled,
			InitialTransaction: true,
		},
	})
	assert.NotContains(t, data, "billing_method")
}

func TestAddOptionsNetworkTransactionIDStandsAlone(t *testing.T) {
	data := foldOptions(&TransactionOptions{NetworkTransactionID: "010081676031903"})
	assert.Equal(t, "010081676031903", data.Get("network_transaction_id"))
	assert.NotContains(t, data, "initiated_by")
	assert.NotContains(t, data, "stored_credential_indicator")
}

func TestAddOptionsMerchantDefinedFields(t *testing.T) {
	data := foldOptions(&TransactionOptions{
		MerchantDefinedFields: map[int]string{
			8: "value8",
			9: "value9",
			3: "",
		},
	})

	assert.Equal(t, "value8", data.Get("merchant_defined_field_8"))
	assert.Equal(t, "value9", data.Get("merchant_defined_field_9"))
	assert.NotContains(t, data, "merchant_defined_field_3")
}
