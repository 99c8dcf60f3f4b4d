package nmi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevin07696/nmi-gateway/internal/domain"
)

func TestAddPaymentMethodCreditCard(t *testing.T) {
	data := url.Values{}
	addPaymentMethod(data, testCard())

	assert.Equal(t, "creditcard", data.Get("payment"))
	assert.Equal(t, "4111111111111111", data.Get("ccnumber"))
	assert.Equal(t, "0927", data.Get("ccexp"))
	assert.Equal(t, "917", data.Get("cvv"))
}

func TestAddPaymentMethodBlankCVVOmitted(t *testing.T) {
	tests := []struct {
		name string
		cvv  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"tab and newline", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := testCard()
			card.CVV = tt.cvv

			data := url.Values{}
			addPaymentMethod(data, card)

			assert.NotContains(t, data, "cvv")
			assert.Equal(t, "4111111111111111", data.Get("ccnumber"))
		})
	}
}

func TestAddPaymentMethodEcheck(t *testing.T) {
	data := url.Values{}
	addPaymentMethod(data, testCheck())

	assert.Equal(t, "check", data.Get("payment"))
	assert.Equal(t, "Jim", data.Get("firstname"))
	assert.Equal(t, "Smith", data.Get("lastname"))
	assert.Equal(t, "Jim Smith", data.Get("checkname"))
	assert.Equal(t, "123123123", data.Get("checkaba"))
	assert.Equal(t, "123123123", data.Get("checkaccount"))
	assert.Equal(t, "personal", data.Get("account_holder_type"))
	assert.Equal(t, "checking", data.Get("account_type"))
	assert.Equal(t, "WEB", data.Get("sec_code"))
	assert.NotContains(t, data, "ccnumber")
	assert.NotContains(t, data, "ccexp")
}

func TestAddPaymentMethodBusinessSavingsEcheck(t *testing.T) {
	check := testCheck()
	check.AccountHolderType = domain.HolderTypeBusiness
	check.AccountType = domain.AccountTypeSavings

	data := url.Values{}
	addPaymentMethod(data, check)

	assert.Equal(t, "business", data.Get("account_holder_type"))
	assert.Equal(t, "savings", data.Get("account_type"))
}

func TestExpirationFormatting(t *testing.T) {
	tests := []struct {
		month int
		year  int
		want  string
	}{
		{9, 2027, "0927"},
		{12, 2030, "1230"},
		{1, 2005, "0105"},
		{10, 2099, "1099"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, expiration(tt.month, tt.year))
	}
}
