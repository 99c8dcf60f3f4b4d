package nmi

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// action is the closed set of operations the gateway accepts. Transaction
// actions travel in the type field; vault actions travel in customer_vault.
type action string

const (
	actionSale     action = "sale"
	actionAuth     action = "auth"
	actionCapture  action = "capture"
	actionVoid     action = "void"
	actionRefund   action = "refund"
	actionCredit   action = "credit"
	actionValidate action = "validate"

	actionAddCustomer    action = "add_customer"
	actionDeleteCustomer action = "delete_customer"
)

func (a action) isVault() bool {
	return a == actionAddCustomer || a == actionDeleteCustomer
}

// newRequest starts a parameter set with authentication and the operation
// marker. Field order on the wire is whatever url.Values.Encode produces
// (sorted by key) - receivers parse by key, and sorting makes any two builds
// with identical logical inputs byte-identical.
func (g *Gateway) newRequest(act action) url.Values {
	data := url.Values{}

	if g.credentials.SecurityKey != "" {
		data.Set("security_key", g.credentials.SecurityKey)
	} else {
		data.Set("username", g.credentials.Login)
		data.Set("password", g.credentials.Password)
	}

	if act.isVault() {
		// vault operations carry no type and no amount
		data.Set("customer_vault", string(act))
	} else {
		data.Set("type", string(act))
	}

	return data
}

// formatAmount renders minor units as fixed-point with exactly two decimal
// digits: 100 -> "1.00".
func formatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
