package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jewelstore-backend/internal/domains/coupon/model"
)

// CouponRepository defines persistence operations for coupons.
type CouponRepository interface {
	// Read
	FindByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error)
	GetUserUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error)

	// Admin write
	Create(ctx context.Context, coupon *model.Coupon) error
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RedeemForOrderWithTx records a redemption inside the checkout
	// transaction. It is idempotent per order: retrying the same order
	// neither double-counts usage nor inserts a second row. Returns
	// model.ErrCouponExhausted when the usage limit would be exceeded.
	RedeemForOrderWithTx(ctx context.Context, tx pgx.Tx, redemption *model.CouponRedemption) error

	// ReleaseForOrderWithTx undoes a redemption when the order is
	// cancelled, freeing the slot for other customers.
	ReleaseForOrderWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error
}
