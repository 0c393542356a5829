package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/coupon/model"
)

// EligibilityInput is everything the checker needs. The caller resolves
// the user's recorded usage count up front so the check itself stays pure.
type EligibilityInput struct {
	UserID         *uuid.UUID // nil for guests
	Subtotal       decimal.Decimal
	CartProductIDs []uuid.UUID
	UserUsageCount int
	Now            time.Time
}

// EligibilityChecker validates a coupon against the rules in order:
// active flag, validity window, minimum order, global usage limit,
// user allow/deny lists, product allow/deny lists, per-user usage limit.
type EligibilityChecker struct{}

func NewEligibilityChecker() *EligibilityChecker {
	return &EligibilityChecker{}
}

// Check returns nil when the coupon may be applied, or the distinct
// eligibility error for the first failing rule.
func (e *EligibilityChecker) Check(coupon *model.Coupon, in EligibilityInput) error {
	if !coupon.IsActive {
		return model.ErrCouponInactive
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	if now.Before(coupon.ValidFrom) {
		return model.ErrCouponNotStarted
	}
	if now.After(coupon.ValidUntil) {
		return model.ErrCouponExpired
	}

	if in.Subtotal.LessThan(coupon.MinimumOrderAmount) {
		return model.ErrMinimumOrderNotMet
	}

	if coupon.IsExhausted() {
		return model.ErrCouponExhausted
	}

	if len(coupon.AllowedUsers) > 0 {
		if in.UserID == nil {
			return model.ErrCouponRequiresSignIn
		}
		if !containsUUID(coupon.AllowedUsers, *in.UserID) {
			return model.ErrUserNotAllowed
		}
	}
	if len(coupon.ExcludedUsers) > 0 && in.UserID != nil {
		if containsUUID(coupon.ExcludedUsers, *in.UserID) {
			return model.ErrUserExcluded
		}
	}

	if len(coupon.ApplicableProducts) > 0 {
		if !containsAnyUUID(in.CartProductIDs, coupon.ApplicableProducts) {
			return model.ErrProductsNotApplicable
		}
	}
	if len(coupon.ExcludedProducts) > 0 {
		if containsAnyUUID(in.CartProductIDs, coupon.ExcludedProducts) {
			return model.ErrProductExcluded
		}
	}

	if coupon.UserUsageLimit != nil && in.UserID != nil {
		if in.UserUsageCount >= *coupon.UserUsageLimit {
			return model.ErrUserUsageLimitReached
		}
	}

	return nil
}

func containsUUID(list []uuid.UUID, id uuid.UUID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func containsAnyUUID(candidates, list []uuid.UUID) bool {
	for _, c := range candidates {
		if containsUUID(list, c) {
			return true
		}
	}
	return false
}
