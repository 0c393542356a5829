package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/coupon/model"
	"jewelstore-backend/internal/domains/coupon/repository"
	"jewelstore-backend/pkg/cache"
	"jewelstore-backend/pkg/logger"
)

const (
	couponCacheKeyPrefix = "coupon:code:"
	couponCacheTTL       = 5 * time.Minute
)

type couponService struct {
	repo        repository.CouponRepository
	calculator  *DiscountCalculator
	eligibility *EligibilityChecker
	cache       cache.Cache
}

// NewCouponService creates the coupon service. The cache is injected so
// tests can swap in a fake and so the service never owns a Redis client.
func NewCouponService(repo repository.CouponRepository, c cache.Cache) ServiceInterface {
	return &couponService{
		repo:        repo,
		calculator:  NewDiscountCalculator(),
		eligibility: NewEligibilityChecker(),
		cache:       c,
	}
}

// -------------------------------------------------------------------
// PUBLIC
// -------------------------------------------------------------------

// ValidateCoupon checks the code against the caller's cart and returns
// the discount it would grant. Nothing is reserved; the redemption
// happens at checkout.
func (s *couponService) ValidateCoupon(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error) {
	req.NormalizeCode()

	coupon, err := s.findByCodeCached(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	in := EligibilityInput{
		UserID:         req.UserID,
		Subtotal:       req.Subtotal,
		CartProductIDs: req.CartProductIDs,
		Now:            time.Now(),
	}
	if req.UserID != nil && coupon.UserUsageLimit != nil {
		count, err := s.repo.GetUserUsageCount(ctx, coupon.ID, *req.UserID)
		if err != nil {
			return nil, err
		}
		in.UserUsageCount = count
	}

	if err := s.eligibility.Check(coupon, in); err != nil {
		return &model.ValidationResult{
			Valid:          false,
			Code:           coupon.Code,
			DiscountAmount: decimal.Zero,
			Message:        err.Error(),
		}, nil
	}

	discount, err := s.calculator.Calculate(coupon, req.Subtotal)
	if err != nil {
		return nil, err
	}

	return &model.ValidationResult{
		Valid:          true,
		Code:           coupon.Code,
		DiscountAmount: discount,
	}, nil
}

// -------------------------------------------------------------------
// CHECKOUT INTEGRATION
// -------------------------------------------------------------------

// ApplyToOrder re-validates the coupon and records the redemption
// inside the caller's transaction. Eligibility is checked again here
// because the cart-time check is only advisory; the conditional
// increment in the repository is what actually prevents oversell.
func (s *couponService) ApplyToOrder(
	ctx context.Context,
	tx pgx.Tx,
	code string,
	userID *uuid.UUID,
	subtotal decimal.Decimal,
	productIDs []uuid.UUID,
	orderID uuid.UUID,
) (decimal.Decimal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	in := EligibilityInput{
		UserID:         userID,
		Subtotal:       subtotal,
		CartProductIDs: productIDs,
		Now:            time.Now(),
	}
	if userID != nil && coupon.UserUsageLimit != nil {
		count, err := s.repo.GetUserUsageCount(ctx, coupon.ID, *userID)
		if err != nil {
			return decimal.Zero, err
		}
		in.UserUsageCount = count
	}
	if err := s.eligibility.Check(coupon, in); err != nil {
		return decimal.Zero, model.NewCouponError(model.ErrCodeCouponIneligible, "coupon is not eligible for this order", err)
	}

	discount, err := s.calculator.Calculate(coupon, subtotal)
	if err != nil {
		return decimal.Zero, err
	}

	redemption := &model.CouponRedemption{
		CouponID:       coupon.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discount,
	}
	if err := s.repo.RedeemForOrderWithTx(ctx, tx, redemption); err != nil {
		if errors.Is(err, model.ErrCouponExhausted) {
			return decimal.Zero, model.NewCouponError(model.ErrCodeCouponExhausted, "coupon usage limit reached", err)
		}
		return decimal.Zero, err
	}

	s.invalidateCache(ctx, coupon.Code)

	return discount, nil
}

func (s *couponService) ReleaseFromOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	return s.repo.ReleaseForOrderWithTx(ctx, tx, orderID)
}

// -------------------------------------------------------------------
// ADMIN
// -------------------------------------------------------------------

func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	req.NormalizeCode()

	coupon := req.ToCoupon()
	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, model.ErrCouponCodeTaken) {
			return nil, model.NewCouponError(model.ErrCodeCouponCodeTaken, "coupon code already exists", err)
		}
		return nil, err
	}

	logger.Info("coupon created", map[string]interface{}{
		"coupon_id": coupon.ID,
		"code":      coupon.Code,
	})

	return coupon, nil
}

func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyCouponUpdate(coupon, req)

	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, coupon.Code)

	return coupon, nil
}

func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, coupon.Code)

	logger.Info("coupon deleted", map[string]interface{}{
		"coupon_id": id,
		"code":      coupon.Code,
	})

	return nil
}

func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *couponService) List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

// findByCodeCached serves the public validate endpoint, which takes the
// bulk of coupon reads. Writes invalidate the key so a disabled coupon
// stops validating within one request, not one TTL.
func (s *couponService) findByCodeCached(ctx context.Context, code string) (*model.Coupon, error) {
	key := couponCacheKeyPrefix + code

	if s.cache != nil {
		var cached model.Coupon
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("coupon cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		if found {
			return &cached, nil
		}
	}

	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, coupon, couponCacheTTL); err != nil {
			logger.Warn("coupon cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	return coupon, nil
}

func (s *couponService) invalidateCache(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, couponCacheKeyPrefix+code); err != nil {
		logger.Warn("coupon cache invalidation failed", map[string]interface{}{
			"code":  code,
			"error": err.Error(),
		})
	}
}

func applyCouponUpdate(coupon *model.Coupon, req *model.UpdateCouponRequest) {
	if req.Description != nil {
		coupon.Description = req.Description
	}
	if req.Value != nil {
		coupon.Value = decimal.NewFromFloat(*req.Value)
	}
	if req.MinimumOrderAmount != nil {
		coupon.MinimumOrderAmount = decimal.NewFromFloat(*req.MinimumOrderAmount)
	}
	if req.MaximumDiscountAmount != nil {
		max := decimal.NewFromFloat(*req.MaximumDiscountAmount)
		coupon.MaximumDiscountAmount = &max
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = req.UsageLimit
	}
	if req.UserUsageLimit != nil {
		coupon.UserUsageLimit = req.UserUsageLimit
	}
	if req.ValidFrom != nil {
		coupon.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		coupon.ValidUntil = *req.ValidUntil
	}
	if req.AllowedUsers != nil {
		coupon.AllowedUsers = req.AllowedUsers
	}
	if req.ExcludedUsers != nil {
		coupon.ExcludedUsers = req.ExcludedUsers
	}
	if req.ApplicableProducts != nil {
		coupon.ApplicableProducts = req.ApplicableProducts
	}
	if req.ExcludedProducts != nil {
		coupon.ExcludedProducts = req.ExcludedProducts
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
}
