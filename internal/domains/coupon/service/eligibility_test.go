package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"jewelstore-backend/internal/domains/coupon/model"
)

func intPtr(v int) *int { return &v }

func validCoupon() *model.Coupon {
	return &model.Coupon{
		ID:         uuid.New(),
		Code:       "DIWALI10",
		Type:       model.DiscountPercentage,
		Value:      d("10"),
		ValidFrom:  time.Now().Add(-24 * time.Hour),
		ValidUntil: time.Now().Add(24 * time.Hour),
		IsActive:   true,
	}
}

func TestEligibility_ActiveAndWindow(t *testing.T) {
	checker := NewEligibilityChecker()
	now := time.Now()

	t.Run("inactive coupon rejected", func(t *testing.T) {
		c := validCoupon()
		c.IsActive = false
		err := checker.Check(c, EligibilityInput{Subtotal: d("100"), Now: now})
		assert.ErrorIs(t, err, model.ErrCouponInactive)
	})

	t.Run("not started yet", func(t *testing.T) {
		c := validCoupon()
		c.ValidFrom = now.Add(time.Hour)
		err := checker.Check(c, EligibilityInput{Subtotal: d("100"), Now: now})
		assert.ErrorIs(t, err, model.ErrCouponNotStarted)
	})

	t.Run("expired", func(t *testing.T) {
		c := validCoupon()
		c.ValidUntil = now.Add(-time.Hour)
		err := checker.Check(c, EligibilityInput{Subtotal: d("100"), Now: now})
		assert.ErrorIs(t, err, model.ErrCouponExpired)
	})

	t.Run("valid coupon passes", func(t *testing.T) {
		err := checker.Check(validCoupon(), EligibilityInput{Subtotal: d("100"), Now: now})
		assert.NoError(t, err)
	})
}

func TestEligibility_UsageLimits(t *testing.T) {
	checker := NewEligibilityChecker()
	userID := uuid.New()

	t.Run("exhausted limit always rejects", func(t *testing.T) {
		c := validCoupon()
		c.UsageLimit = intPtr(1)
		c.UsageCount = 1
		err := checker.Check(c, EligibilityInput{Subtotal: d("100")})
		assert.ErrorIs(t, err, model.ErrCouponExhausted)
	})

	t.Run("limit with headroom passes", func(t *testing.T) {
		c := validCoupon()
		c.UsageLimit = intPtr(10)
		c.UsageCount = 9
		err := checker.Check(c, EligibilityInput{Subtotal: d("100")})
		assert.NoError(t, err)
	})

	t.Run("per-user limit reached", func(t *testing.T) {
		c := validCoupon()
		c.UserUsageLimit = intPtr(2)
		err := checker.Check(c, EligibilityInput{
			UserID:         &userID,
			Subtotal:       d("100"),
			UserUsageCount: 2,
		})
		assert.ErrorIs(t, err, model.ErrUserUsageLimitReached)
	})

	t.Run("per-user limit ignored for guests", func(t *testing.T) {
		c := validCoupon()
		c.UserUsageLimit = intPtr(1)
		err := checker.Check(c, EligibilityInput{Subtotal: d("100"), UserUsageCount: 5})
		assert.NoError(t, err)
	})
}

func TestEligibility_UserLists(t *testing.T) {
	checker := NewEligibilityChecker()
	allowed := uuid.New()
	other := uuid.New()

	t.Run("allow list requires sign in", func(t *testing.T) {
		c := validCoupon()
		c.AllowedUsers = []uuid.UUID{allowed}
		err := checker.Check(c, EligibilityInput{Subtotal: d("100")})
		assert.ErrorIs(t, err, model.ErrCouponRequiresSignIn)
	})

	t.Run("user not on allow list", func(t *testing.T) {
		c := validCoupon()
		c.AllowedUsers = []uuid.UUID{allowed}
		err := checker.Check(c, EligibilityInput{UserID: &other, Subtotal: d("100")})
		assert.ErrorIs(t, err, model.ErrUserNotAllowed)
	})

	t.Run("user on allow list passes", func(t *testing.T) {
		c := validCoupon()
		c.AllowedUsers = []uuid.UUID{allowed}
		err := checker.Check(c, EligibilityInput{UserID: &allowed, Subtotal: d("100")})
		assert.NoError(t, err)
	})

	t.Run("excluded user rejected", func(t *testing.T) {
		c := validCoupon()
		c.ExcludedUsers = []uuid.UUID{other}
		err := checker.Check(c, EligibilityInput{UserID: &other, Subtotal: d("100")})
		assert.ErrorIs(t, err, model.ErrUserExcluded)
	})
}

func TestEligibility_ProductLists(t *testing.T) {
	checker := NewEligibilityChecker()
	ring := uuid.New()
	necklace := uuid.New()

	t.Run("no applicable product in cart", func(t *testing.T) {
		c := validCoupon()
		c.ApplicableProducts = []uuid.UUID{ring}
		err := checker.Check(c, EligibilityInput{
			Subtotal:       d("100"),
			CartProductIDs: []uuid.UUID{necklace},
		})
		assert.ErrorIs(t, err, model.ErrProductsNotApplicable)
	})

	t.Run("one applicable product suffices", func(t *testing.T) {
		c := validCoupon()
		c.ApplicableProducts = []uuid.UUID{ring}
		err := checker.Check(c, EligibilityInput{
			Subtotal:       d("100"),
			CartProductIDs: []uuid.UUID{necklace, ring},
		})
		assert.NoError(t, err)
	})

	t.Run("excluded product in cart rejects", func(t *testing.T) {
		c := validCoupon()
		c.ExcludedProducts = []uuid.UUID{necklace}
		err := checker.Check(c, EligibilityInput{
			Subtotal:       d("100"),
			CartProductIDs: []uuid.UUID{necklace, ring},
		})
		assert.ErrorIs(t, err, model.ErrProductExcluded)
	})
}

func TestEligibility_MinimumOrder(t *testing.T) {
	checker := NewEligibilityChecker()
	c := validCoupon()
	c.MinimumOrderAmount = d("500")

	err := checker.Check(c, EligibilityInput{Subtotal: d("499.99")})
	assert.ErrorIs(t, err, model.ErrMinimumOrderNotMet)

	err = checker.Check(c, EligibilityInput{Subtotal: d("500")})
	assert.NoError(t, err)
}
