package nmi

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kevin07696/nmi-gateway/internal/domain"
)

// addPaymentMethod emits the flat field set for a payment instrument.
// No validation happens here: malformed instruments are passed through and
// rejected by the processor.
func addPaymentMethod(data url.Values, method domain.PaymentMethod) {
	switch m := method.(type) {
	case domain.CreditCard:
		data.Set("payment", "creditcard")
		data.Set("ccnumber", m.Number)
		data.Set("ccexp", expiration(m.Month, m.Year))
		// A blank or whitespace-only CVV is treated as absent
		if cvv := strings.TrimSpace(m.CVV); cvv != "" {
			data.Set("cvv", cvv)
		}
	case domain.ECheck:
		data.Set("payment", "check")
		data.Set("firstname", m.FirstName)
		data.Set("lastname", m.LastName)
		data.Set("checkname", m.Name())
		data.Set("checkaba", m.RoutingNumber)
		data.Set("checkaccount", m.AccountNumber)
		data.Set("account_holder_type", string(m.AccountHolderType))
		data.Set("account_type", string(m.AccountType))
		data.Set("sec_code", "WEB") // web-initiated ACH
	}
}

// expiration formats MMYY: zero-padded month plus the two low-order digits
// of the year (9/2027 -> "0927").
func expiration(month, year int) string {
	return fmt.Sprintf("%02d%02d", month, year%100)
}
