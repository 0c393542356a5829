package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// AddressInput is the client-supplied address, validated then frozen
// into an AddressSnapshot.
type AddressInput struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

func (a AddressInput) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FullName, validation.Required.Error("full name is required"), validation.Length(2, 100)),
		validation.Field(&a.Line1, validation.Required.Error("address line is required"), validation.Length(3, 200)),
		validation.Field(&a.City, validation.Required.Error("city is required")),
		validation.Field(&a.State, validation.Required.Error("state is required")),
		validation.Field(&a.PostalCode, validation.Required.Error("postal code is required"), validation.Length(4, 10)),
		validation.Field(&a.Country, validation.Required.Error("country is required")),
		validation.Field(&a.Phone, validation.Required.Error("phone is required"), validation.Length(8, 20)),
	)
}

func (a AddressInput) ToSnapshot() AddressSnapshot {
	return AddressSnapshot{
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// CheckoutRequest places an order from the caller's cart. Email and
// phone are required for guests and default to the account values for
// signed-in customers.
type CheckoutRequest struct {
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	PaymentMethod   string        `json:"payment_method"`
	ShippingMethod  string        `json:"shipping_method"`
	ShippingAddress AddressInput  `json:"shipping_address"`
	BillingAddress  *AddressInput `json:"billing_address"` // nil = same as shipping
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.Length(8, 20).Error("phone must be 8-20 characters"),
		),
		validation.Field(&r.PaymentMethod,
			validation.Required.Error("payment method is required"),
			validation.In(string(PaymentOnline), string(PaymentCOD)).Error("payment method must be 'online' or 'cod'"),
		),
		validation.Field(&r.ShippingMethod,
			validation.Required.Error("shipping method is required"),
			validation.In(
				string(ShippingStandard),
				string(ShippingExpress),
				string(ShippingOvernight),
			).Error("shipping method must be 'standard', 'express' or 'overnight'"),
		),
		validation.Field(&r.ShippingAddress),
		validation.Field(&r.BillingAddress),
	)
}

// TrackOrderRequest lets a guest look up an order without an account.
type TrackOrderRequest struct {
	ConfirmationNumber string `json:"confirmation_number"`
	Email              string `json:"email"`
}

func (r TrackOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfirmationNumber,
			validation.Required.Error("confirmation number is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
	)
}

// GuestCancelRequest cancels a guest order via the track-order flow.
type GuestCancelRequest struct {
	ConfirmationNumber string `json:"confirmation_number"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
}

func (r GuestCancelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ConfirmationNumber, validation.Required.Error("confirmation number is required")),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.Email.Error("email is not valid")),
		validation.Field(&r.Phone, validation.Required.Error("phone is required")),
	)
}

// UpdateStatusRequest is the admin status-change payload.
type UpdateStatusRequest struct {
	Status                string     `json:"status"`
	TrackingNumber        *string    `json:"tracking_number"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.By(func(interface{}) error {
				if !OrderStatus(r.Status).IsValid() {
					return validation.NewError("validation_status", "unknown order status")
				}
				return nil
			}),
		),
	)
}

// ListOrdersFilter drives the admin and customer listing endpoints.
type ListOrdersFilter struct {
	Status string
	Search string // confirmation number or email
	Page   int
	Limit  int
}

func (f *ListOrdersFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// CheckoutResponse is returned after a successful checkout. For online
// payments the gateway order id is handed to the client to complete
// payment.
type CheckoutResponse struct {
	OrderID            string          `json:"order_id"`
	ConfirmationNumber string          `json:"confirmation_number"`
	Status             OrderStatus     `json:"status"`
	Total              decimal.Decimal `json:"total"`
	GatewayOrderID     *string         `json:"gateway_order_id,omitempty"`
}

// CancelResponse reports a successful cancellation plus the refund
// note for prepaid orders.
type CancelResponse struct {
	OrderID            string      `json:"order_id"`
	ConfirmationNumber string      `json:"confirmation_number"`
	Status             OrderStatus `json:"status"`
	Note               string      `json:"note,omitempty"`
}

// OrderDetail is the full order view with its items.
type OrderDetail struct {
	Order
	Items []OrderItem `json:"items"`
}
