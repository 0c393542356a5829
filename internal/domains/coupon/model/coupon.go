package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage of the subtotal,
	// optionally capped by MaximumDiscountAmount.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixedAmount applies a fixed amount capped at the subtotal.
	DiscountFixedAmount DiscountType = "fixed_amount"
)

func (dt DiscountType) IsValid() bool {
	switch dt {
	case DiscountPercentage, DiscountFixedAmount:
		return true
	}
	return false
}

func (dt DiscountType) String() string {
	return string(dt)
}

// Coupon represents a discount rule.
type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`

	// Discount details
	Type                  DiscountType     `json:"type" db:"type"`
	Value                 decimal.Decimal  `json:"value" db:"value"`
	MinimumOrderAmount    decimal.Decimal  `json:"minimum_order_amount" db:"minimum_order_amount"`
	MaximumDiscountAmount *decimal.Decimal `json:"maximum_discount_amount,omitempty" db:"maximum_discount_amount"`

	// Usage limits (nil = unlimited)
	UsageLimit     *int `json:"usage_limit,omitempty" db:"usage_limit"`
	UserUsageLimit *int `json:"user_usage_limit,omitempty" db:"user_usage_limit"`
	UsageCount     int  `json:"usage_count" db:"usage_count"`

	// Validity window
	ValidFrom  time.Time `json:"valid_from" db:"valid_from"`
	ValidUntil time.Time `json:"valid_until" db:"valid_until"`

	// Allow / deny lists (empty = no restriction)
	AllowedUsers       []uuid.UUID `json:"allowed_users,omitempty" db:"allowed_users"`
	ExcludedUsers      []uuid.UUID `json:"excluded_users,omitempty" db:"excluded_users"`
	ApplicableProducts []uuid.UUID `json:"applicable_products,omitempty" db:"applicable_products"`
	ExcludedProducts   []uuid.UUID `json:"excluded_products,omitempty" db:"excluded_products"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsWithinWindow checks whether now falls inside the validity window.
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// IsExhausted checks the global usage limit.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit
}

// UserCoupon tracks how many times one user has used one coupon,
// enforcing UserUsageLimit.
type UserCoupon struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	CouponID   uuid.UUID `json:"coupon_id" db:"coupon_id"`
	UsageCount int       `json:"usage_count" db:"usage_count"`
	LastUsedAt time.Time `json:"last_used_at" db:"last_used_at"`
}

// CouponRedemption records one coupon applied to one order. The unique
// constraint on order_id is what makes redemption idempotent: a retried
// order creation inserts nothing and therefore increments nothing.
type CouponRedemption struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	CouponID       uuid.UUID       `json:"coupon_id" db:"coupon_id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	OrderID        uuid.UUID       `json:"order_id" db:"order_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	RedeemedAt     time.Time       `json:"redeemed_at" db:"redeemed_at"`
}
