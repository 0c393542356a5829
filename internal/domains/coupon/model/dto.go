package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var couponCodePattern = regexp.MustCompile("^[A-Z0-9_-]+$")

// ValidateCouponRequest checks a coupon code against the caller's cart.
type ValidateCouponRequest struct {
	Code           string          `json:"code"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CartProductIDs []uuid.UUID     `json:"cart_product_ids"`
	UserID         *uuid.UUID      `json:"-"` // from JWT, nil for guests
}

func (r ValidateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("coupon code is required"),
			validation.Length(3, 50).Error("coupon code must be 3-50 characters"),
		),
		validation.Field(&r.Subtotal,
			validation.Min(decimal.Zero).Error("subtotal must be >= 0"),
		),
	)
}

// NormalizeCode uppercases and trims the code before lookup.
func (r *ValidateCouponRequest) NormalizeCode() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

// ValidationResult is returned by the public validate endpoint.
type ValidationResult struct {
	Valid          bool            `json:"valid"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Message        string          `json:"message,omitempty"`
}

// -------------------------------------------------------------------
// ADMIN REQUESTS
// -------------------------------------------------------------------

// CreateCouponRequest creates a new coupon.
type CreateCouponRequest struct {
	Code                  string      `json:"code"`
	Description           *string     `json:"description"`
	Type                  string      `json:"type"`
	Value                 float64     `json:"value"`
	MinimumOrderAmount    float64     `json:"minimum_order_amount"`
	MaximumDiscountAmount *float64    `json:"maximum_discount_amount"`
	UsageLimit            *int        `json:"usage_limit"`
	UserUsageLimit        *int        `json:"user_usage_limit"`
	ValidFrom             time.Time   `json:"valid_from"`
	ValidUntil            time.Time   `json:"valid_until"`
	AllowedUsers          []uuid.UUID `json:"allowed_users"`
	ExcludedUsers         []uuid.UUID `json:"excluded_users"`
	ApplicableProducts    []uuid.UUID `json:"applicable_products"`
	ExcludedProducts      []uuid.UUID `json:"excluded_products"`
	IsActive              bool        `json:"is_active"`
}

func (r CreateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("coupon code is required"),
			validation.Length(3, 50).Error("coupon code must be 3-50 characters"),
			validation.Match(couponCodePattern).Error("coupon code may contain only uppercase letters, digits, - and _"),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil,
				validation.Length(0, 500).Error("description must be at most 500 characters"),
			),
		),
		validation.Field(&r.Type,
			validation.Required.Error("discount type is required"),
			validation.In(string(DiscountPercentage), string(DiscountFixedAmount)).
				Error("discount type must be 'percentage' or 'fixed_amount'"),
		),
		validation.Field(&r.Value,
			validation.Required.Error("discount value is required"),
			validation.Min(0.01).Error("discount value must be > 0"),
			validation.By(r.validateValue),
		),
		validation.Field(&r.MinimumOrderAmount,
			validation.Min(0.0).Error("minimum order amount must be >= 0"),
		),
		validation.Field(&r.MaximumDiscountAmount,
			validation.When(r.MaximumDiscountAmount != nil,
				validation.By(r.validateMaxDiscount),
			),
		),
		validation.Field(&r.UsageLimit,
			validation.When(r.UsageLimit != nil,
				validation.By(positiveIntPtr("usage limit")),
			),
		),
		validation.Field(&r.UserUsageLimit,
			validation.When(r.UserUsageLimit != nil,
				validation.By(positiveIntPtr("per-user usage limit")),
			),
		),
		validation.Field(&r.ValidFrom,
			validation.Required.Error("valid_from is required"),
		),
		validation.Field(&r.ValidUntil,
			validation.Required.Error("valid_until is required"),
			validation.By(r.validateWindow),
		),
	)
}

// validateValue rejects percentages over 100.
func (r CreateCouponRequest) validateValue(value interface{}) error {
	if r.Type == string(DiscountPercentage) && r.Value > 100 {
		return validation.NewError("validation_percentage_range", "percentage discount cannot exceed 100")
	}
	return nil
}

func (r CreateCouponRequest) validateMaxDiscount(value interface{}) error {
	if r.MaximumDiscountAmount != nil && *r.MaximumDiscountAmount <= 0 {
		return validation.NewError("validation_max_discount", "maximum discount amount must be > 0")
	}
	return nil
}

func (r CreateCouponRequest) validateWindow(value interface{}) error {
	if !r.ValidUntil.After(r.ValidFrom) {
		return validation.NewError("validation_window", "valid_until must be after valid_from")
	}
	return nil
}

func positiveIntPtr(name string) validation.RuleFunc {
	return func(value interface{}) error {
		v, ok := value.(*int)
		if !ok || v == nil {
			return nil
		}
		if *v < 1 {
			return validation.NewError("validation_positive", name+" must be >= 1")
		}
		return nil
	}
}

// NormalizeCode uppercases and trims the code before insert.
func (r *CreateCouponRequest) NormalizeCode() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

// ToCoupon builds the entity from the request.
func (r *CreateCouponRequest) ToCoupon() *Coupon {
	c := &Coupon{
		ID:                 uuid.New(),
		Code:               r.Code,
		Description:        r.Description,
		Type:               DiscountType(r.Type),
		Value:              decimal.NewFromFloat(r.Value),
		MinimumOrderAmount: decimal.NewFromFloat(r.MinimumOrderAmount),
		UsageLimit:         r.UsageLimit,
		UserUsageLimit:     r.UserUsageLimit,
		ValidFrom:          r.ValidFrom,
		ValidUntil:         r.ValidUntil,
		AllowedUsers:       r.AllowedUsers,
		ExcludedUsers:      r.ExcludedUsers,
		ApplicableProducts: r.ApplicableProducts,
		ExcludedProducts:   r.ExcludedProducts,
		IsActive:           r.IsActive,
	}
	if r.MaximumDiscountAmount != nil {
		max := decimal.NewFromFloat(*r.MaximumDiscountAmount)
		c.MaximumDiscountAmount = &max
	}
	return c
}

// UpdateCouponRequest updates mutable coupon fields. Nil means unchanged.
type UpdateCouponRequest struct {
	Description           *string     `json:"description"`
	Value                 *float64    `json:"value"`
	MinimumOrderAmount    *float64    `json:"minimum_order_amount"`
	MaximumDiscountAmount *float64    `json:"maximum_discount_amount"`
	UsageLimit            *int        `json:"usage_limit"`
	UserUsageLimit        *int        `json:"user_usage_limit"`
	ValidFrom             *time.Time  `json:"valid_from"`
	ValidUntil            *time.Time  `json:"valid_until"`
	AllowedUsers          []uuid.UUID `json:"allowed_users"`
	ExcludedUsers         []uuid.UUID `json:"excluded_users"`
	ApplicableProducts    []uuid.UUID `json:"applicable_products"`
	ExcludedProducts      []uuid.UUID `json:"excluded_products"`
	IsActive              *bool       `json:"is_active"`
}

func (r UpdateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value,
			validation.When(r.Value != nil,
				validation.By(func(interface{}) error {
					if *r.Value <= 0 {
						return validation.NewError("validation_value", "discount value must be > 0")
					}
					return nil
				}),
			),
		),
		validation.Field(&r.ValidUntil,
			validation.When(r.ValidFrom != nil && r.ValidUntil != nil,
				validation.By(func(interface{}) error {
					if !r.ValidUntil.After(*r.ValidFrom) {
						return validation.NewError("validation_window", "valid_until must be after valid_from")
					}
					return nil
				}),
			),
		),
	)
}

// ListCouponsFilter drives the admin listing endpoint.
type ListCouponsFilter struct {
	Status string // active, expired, upcoming, inactive, all
	Search string
	Page   int
	Limit  int
}

func (f *ListCouponsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status == "" {
		f.Status = "all"
	}
}
