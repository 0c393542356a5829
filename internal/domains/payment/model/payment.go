package model

import (
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrOrderNotFound    = errors.New("no order matches this gateway order")
)

const (
	ErrCodeInvalidSignature = "PAY001"
	ErrCodeOrderNotFound    = "PAY002"
	ErrCodeInvalidPayment   = "PAY003"
)

// VerifyPaymentRequest is the storefront callback after the customer
// completes the gateway checkout widget.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
}

func (r VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GatewayOrderID, validation.Required.Error("razorpay_order_id is required")),
		validation.Field(&r.GatewayPaymentID, validation.Required.Error("razorpay_payment_id is required")),
		validation.Field(&r.Signature, validation.Required.Error("razorpay_signature is required")),
	)
}

// Webhook event names we act on. Anything else is acknowledged and
// ignored so the gateway stops retrying.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

// WebhookEvent is the subset of the gateway webhook body we consume.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhookEvent decodes a webhook body after its signature has
// been verified.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	event := &WebhookEvent{}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	if event.Event == "" {
		return nil, fmt.Errorf("webhook body missing event name")
	}
	return event, nil
}
