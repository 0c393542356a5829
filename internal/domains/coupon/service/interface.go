package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/coupon/model"
)

// ServiceInterface is the coupon domain API consumed by handlers and
// by the order service during checkout.
type ServiceInterface interface {
	// Public
	ValidateCoupon(ctx context.Context, req *model.ValidateCouponRequest) (*model.ValidationResult, error)

	// Checkout integration. ApplyToOrder runs inside the checkout
	// transaction: it re-checks eligibility, computes the discount and
	// records the redemption atomically.
	ApplyToOrder(ctx context.Context, tx pgx.Tx, code string, userID *uuid.UUID, subtotal decimal.Decimal, productIDs []uuid.UUID, orderID uuid.UUID) (decimal.Decimal, error)
	ReleaseFromOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error

	// Admin
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error)
}
