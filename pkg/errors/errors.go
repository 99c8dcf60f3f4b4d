package errors

import (
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryNetworkError    ErrorCategory = "network_error"
	CategorySystemError     ErrorCategory = "system_error"
	CategoryInvalidRequest  ErrorCategory = "invalid_request"
	CategoryInvalidResponse ErrorCategory = "invalid_response"
)

// PaymentError represents a transport or gateway level failure. A processor
// decline is NOT a PaymentError: declines are successfully parsed responses
// with Success=false.
type PaymentError struct {
	Code           string
	Message        string
	GatewayMessage string
	IsRetriable    bool
	Category       ErrorCategory
}

func (e *PaymentError) Error() string {
	if e.GatewayMessage != "" {
		return fmt.Sprintf("%s: %s (gateway: %s)", e.Code, e.Message, e.GatewayMessage)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewPaymentError creates a new payment error
func NewPaymentError(code, message string, category ErrorCategory, retriable bool) *PaymentError {
	return &PaymentError{
		Code:        code,
		Message:     message,
		Category:    category,
		IsRetriable: retriable,
	}
}

// NewParseError creates a payment error for an undecodable gateway response.
// Never retriable: the request was delivered, the reply was garbage.
func NewParseError(detail string) *PaymentError {
	return &PaymentError{
		Code:           "PARSE_ERROR",
		Message:        "failed to parse gateway response",
		GatewayMessage: detail,
		Category:       CategoryInvalidResponse,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
