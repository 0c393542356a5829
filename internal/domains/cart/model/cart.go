package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart business constraints
const (
	// MaxQuantityPerItem caps a single line's quantity.
	MaxQuantityPerItem = 50

	// GuestCartExpirationDays is how long a guest cart lives without activity.
	GuestCartExpirationDays = 7

	// UserCartExpirationDays is how long a signed-in cart lives.
	UserCartExpirationDays = 30
)

// Cache keys
const (
	CacheKeyCartByUser    = "cart:user:%s"
	CacheKeyCartBySession = "cart:session:%s"
)

// Cart belongs to exactly one of a signed-in user or a guest session.
type Cart struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	SessionID *string    `json:"session_id,omitempty" db:"session_id"`

	// Applied coupon, advisory until checkout redeems it.
	CouponCode     *string         `json:"coupon_code,omitempty" db:"coupon_code"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`

	// Denormalized totals, recomputed on every mutation.
	Subtotal          decimal.Decimal `json:"subtotal" db:"subtotal"`
	EstimatedTax      decimal.Decimal `json:"estimated_tax" db:"estimated_tax"`
	EstimatedShipping decimal.Decimal `json:"estimated_shipping" db:"estimated_shipping"`
	EstimatedTotal    decimal.Decimal `json:"estimated_total" db:"estimated_total"`

	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartItem is one product line with a snapshot price taken when the
// item was added. The current catalog price may drift from it.
type CartItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CartID    uuid.UUID       `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CartItemDetail joins the item with live product data for responses.
type CartItemDetail struct {
	CartItem
	ProductName  string          `db:"product_name"`
	ProductSlug  string          `db:"product_slug"`
	ImageURL     *string         `db:"image_url"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	StockCount   int             `db:"stock_count"`
	IsActive     bool            `db:"is_active"`
}

func (c *Cart) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

func (c *Cart) IsGuest() bool {
	return c.UserID == nil
}

// Validate enforces that exactly one owner key is set.
func (c *Cart) Validate() error {
	if (c.UserID == nil) == (c.SessionID == nil) {
		return ErrInvalidCartOwner
	}
	return nil
}

func (ci *CartItem) Validate() error {
	if ci.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if ci.Quantity > MaxQuantityPerItem {
		return ErrQuantityTooHigh
	}
	if ci.UnitPrice.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	return nil
}

func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// HasPriceChanged reports whether the catalog price drifted from the
// snapshot taken at add time.
func (d *CartItemDetail) HasPriceChanged() bool {
	return !d.UnitPrice.Equal(d.CurrentPrice)
}

func (d *CartItemDetail) IsPurchasable() bool {
	return d.IsActive && d.StockCount >= d.Quantity
}

var (
	ErrInvalidCartOwner  = errors.New("cart must belong to either a user or a session, not both")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrQuantityTooHigh   = errors.New("quantity exceeds the per-item limit")
	ErrInvalidPrice      = errors.New("price must be >= 0")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartExpired       = errors.New("cart has expired")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrProductNotActive  = errors.New("product is not available")
)
