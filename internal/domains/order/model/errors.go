package model

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderConflict      = errors.New("order was modified concurrently")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrInvalidShipping    = errors.New("invalid shipping method")
	ErrPaymentNotVerified = errors.New("payment has not been verified")

	// Cancellation failures. Distinct errors so the API can show the
	// right message for each refusal.
	ErrNotCancellable       = errors.New("order can no longer be cancelled")
	ErrNotYourOrder         = errors.New("order does not belong to this account")
	ErrGuestOrderMismatch   = errors.New("guest credentials do not match this order")
	ErrGuestOrderViaAccount = errors.New("guest orders are cancelled through the track-order flow")
)

const (
	ErrCodeOrderNotFound     = "ORD001"
	ErrCodeInvalidTransition = "ORD002"
	ErrCodeNotCancellable    = "ORD003"
	ErrCodeNotOwner          = "ORD004"
	ErrCodeGuestMismatch     = "ORD005"
	ErrCodeCheckoutFailed    = "ORD006"
	ErrCodeOrderConflict     = "ORD007"
	ErrCodePaymentRequired   = "ORD008"
)

// OrderError wraps an order failure with a stable code for the API layer.
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{Code: code, Message: message, Err: err}
}
