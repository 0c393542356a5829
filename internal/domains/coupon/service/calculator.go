package service

import (
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/coupon/model"
)

// DiscountCalculator computes the discount a coupon grants against an
// order subtotal.
type DiscountCalculator struct{}

// NewDiscountCalculator creates a new instance.
func NewDiscountCalculator() *DiscountCalculator {
	return &DiscountCalculator{}
}

// Calculate computes the discount amount for a subtotal.
//
// Percentage: discount = subtotal * value / 100, clamped to
// MaximumDiscountAmount when set.
// Fixed amount: discount = min(value, subtotal).
//
// Returns ErrMinimumOrderNotMet when the subtotal is below the coupon's
// minimum order amount. The result never exceeds the subtotal and is
// rounded to 2 decimals.
func (c *DiscountCalculator) Calculate(coupon *model.Coupon, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.LessThan(coupon.MinimumOrderAmount) {
		return decimal.Zero, model.ErrMinimumOrderNotMet
	}

	var discount decimal.Decimal

	switch coupon.Type {
	case model.DiscountPercentage:
		discount = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))

		if coupon.MaximumDiscountAmount != nil && discount.GreaterThan(*coupon.MaximumDiscountAmount) {
			discount = *coupon.MaximumDiscountAmount
		}

	case model.DiscountFixedAmount:
		discount = coupon.Value

		// A 100 coupon on a 50 order discounts 50, not 100.
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}

	default:
		return decimal.Zero, model.ErrInvalidDiscountType
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	return discount.Round(2), nil
}
