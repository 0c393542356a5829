package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/coupon/model"
)

// redemptionTx emulates the statements RedeemForOrderWithTx issues,
// tracking the counters the way the real tables would. The embedded
// pgx.Tx stays nil; only Exec is expected during redemption.
type redemptionTx struct {
	pgx.Tx

	redeemedOrders map[uuid.UUID]bool
	usageLimit     *int
	usageCount     int
	userUsage      map[uuid.UUID]int
}

func newRedemptionTx(usageLimit *int, usageCount int) *redemptionTx {
	return &redemptionTx{
		redeemedOrders: map[uuid.UUID]bool{},
		usageLimit:     usageLimit,
		usageCount:     usageCount,
		userUsage:      map[uuid.UUID]int{},
	}
}

func (t *redemptionTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "coupon_redemptions"):
		orderID := args[3].(uuid.UUID)
		if t.redeemedOrders[orderID] {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		t.redeemedOrders[orderID] = true
		return pgconn.NewCommandTag("INSERT 0 1"), nil

	case strings.Contains(sql, "user_coupons"):
		t.userUsage[args[1].(uuid.UUID)]++
		return pgconn.NewCommandTag("INSERT 0 1"), nil

	case strings.Contains(sql, "UPDATE coupons"):
		if t.usageLimit != nil && t.usageCount >= *t.usageLimit {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		t.usageCount++
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}

	return pgconn.CommandTag{}, fmt.Errorf("unexpected statement: %s", sql)
}

func TestRedeemForOrderIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := &PostgresRepository{}

	couponID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()

	limit := 10
	tx := newRedemptionTx(&limit, 0)

	redeem := func() error {
		return repo.RedeemForOrderWithTx(ctx, tx, &model.CouponRedemption{
			CouponID:       couponID,
			UserID:         &userID,
			OrderID:        orderID,
			DiscountAmount: decimal.NewFromInt(100),
		})
	}

	require.NoError(t, redeem())
	assert.Equal(t, 1, tx.usageCount)
	assert.Equal(t, 1, tx.userUsage[userID])

	// A checkout retry for the same order must not double-count.
	require.NoError(t, redeem())
	assert.Equal(t, 1, tx.usageCount)
	assert.Equal(t, 1, tx.userUsage[userID])

	// A different order advances the counter again.
	require.NoError(t, repo.RedeemForOrderWithTx(ctx, tx, &model.CouponRedemption{
		CouponID:       couponID,
		UserID:         &userID,
		OrderID:        uuid.New(),
		DiscountAmount: decimal.NewFromInt(100),
	}))
	assert.Equal(t, 2, tx.usageCount)
	assert.Equal(t, 2, tx.userUsage[userID])
}

func TestRedeemForOrderExhausted(t *testing.T) {
	ctx := context.Background()
	repo := &PostgresRepository{}

	limit := 1
	tx := newRedemptionTx(&limit, 1)

	err := repo.RedeemForOrderWithTx(ctx, tx, &model.CouponRedemption{
		CouponID:       uuid.New(),
		OrderID:        uuid.New(),
		DiscountAmount: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, model.ErrCouponExhausted)
	assert.Equal(t, 1, tx.usageCount)
}
