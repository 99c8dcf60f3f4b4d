package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMethodKind(t *testing.T) {
	tests := []struct {
		input string
		want  MethodKind
	}{
		{"creditcard", MethodKindCreditCard},
		{"check", MethodKindCheck},
		{"", MethodKindUnknown},
		{"visa", MethodKindUnknown},
		{"CreditCard", MethodKindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseMethodKind(tt.input))
	}
}

func TestPaymentMethodKinds(t *testing.T) {
	assert.Equal(t, MethodKindCreditCard, CreditCard{}.Kind())
	assert.Equal(t, MethodKindCheck, ECheck{}.Kind())
}

func TestECheckName(t *testing.T) {
	tests := []struct {
		name  string
		check ECheck
		want  string
	}{
		{"both names", ECheck{FirstName: "Jim", LastName: "Smith"}, "Jim Smith"},
		{"last name only", ECheck{LastName: "Smith"}, "Smith"},
		{"first name only", ECheck{FirstName: "Jim"}, "Jim"},
		{"no names", ECheck{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check.Name())
		})
	}
}
