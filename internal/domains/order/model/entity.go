package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentOnline || m == PaymentCOD
}

// PaymentStatus tracks the money side, separate from fulfilment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunding PaymentStatus = "refunding"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// AddressSnapshot is copied onto the order at checkout. Later edits to
// the customer's address book must not change an existing order.
type AddressSnapshot struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order is an immutable purchase snapshot. Monetary fields and
// addresses are frozen at checkout.
type Order struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	ConfirmationNumber string    `json:"confirmation_number" db:"confirmation_number"`

	// Customer identity. Guest orders get a synthesized customer id and
	// the flag set; the flag is authoritative, not the id shape.
	CustomerID   uuid.UUID `json:"customer_id" db:"customer_id"`
	IsGuestOrder bool      `json:"is_guest_order" db:"is_guest_order"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`

	// Monetary snapshot
	Subtotal       decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax            decimal.Decimal `json:"tax" db:"tax"`
	Shipping       decimal.Decimal `json:"shipping" db:"shipping"`
	CouponCode     *string         `json:"coupon_code,omitempty" db:"coupon_code"`
	CouponDiscount decimal.Decimal `json:"coupon_discount" db:"coupon_discount"`
	Total          decimal.Decimal `json:"total" db:"total"`

	Status        OrderStatus   `json:"status" db:"status"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`

	// Gateway references, set when PaymentMethod is online.
	GatewayOrderID   *string `json:"gateway_order_id,omitempty" db:"gateway_order_id"`
	GatewayPaymentID *string `json:"gateway_payment_id,omitempty" db:"gateway_payment_id"`

	ShippingAddress AddressSnapshot `json:"shipping_address" db:"shipping_address"`
	BillingAddress  AddressSnapshot `json:"billing_address" db:"billing_address"`

	ShippingMethod        ShippingMethod `json:"shipping_method" db:"shipping_method"`
	TrackingNumber        *string        `json:"tracking_number,omitempty" db:"tracking_number"`
	EstimatedDeliveryDate *time.Time     `json:"estimated_delivery_date,omitempty" db:"estimated_delivery_date"`

	ShippedAt   *time.Time `json:"shipped_at,omitempty" db:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`

	// Version guards concurrent status updates.
	Version   int       `json:"-" db:"version"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem freezes product name and prices at purchase time.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price" db:"total_price"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// IsPrepaid reports whether money changed hands before fulfilment.
func (o *Order) IsPrepaid() bool {
	return o.PaymentMethod == PaymentOnline && o.PaymentStatus == PaymentStatusPaid
}

// HasTracking reports whether a tracking number is already recorded.
func (o *Order) HasTracking() bool {
	return o.TrackingNumber != nil && *o.TrackingNumber != ""
}

// NewConfirmationNumber builds the human-facing order reference, e.g.
// JW-20260828-004217. seq is the day's order sequence from the store.
func NewConfirmationNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("JW-%s-%06d", at.Format("20060102"), seq)
}
