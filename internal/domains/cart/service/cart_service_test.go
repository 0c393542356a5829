package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/cart/model"
	couponModel "jewelstore-backend/internal/domains/coupon/model"
)

type fakeCartRepo struct {
	carts map[uuid.UUID]*model.Cart
	items map[uuid.UUID][]model.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: map[uuid.UUID]*model.Cart{},
		items: map[uuid.UUID][]model.CartItem{},
	}
}

func (f *fakeCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Cart, error) {
	for _, c := range f.carts {
		if c.UserID != nil && *c.UserID == userID {
			return c, nil
		}
	}
	return nil, model.ErrCartNotFound
}

func (f *fakeCartRepo) FindBySessionID(_ context.Context, sessionID string) (*model.Cart, error) {
	for _, c := range f.carts {
		if c.SessionID != nil && *c.SessionID == sessionID {
			return c, nil
		}
	}
	return nil, model.ErrCartNotFound
}

func (f *fakeCartRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, model.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepo) Create(_ context.Context, cart *model.Cart) error {
	f.carts[cart.ID] = cart
	return nil
}

func (f *fakeCartRepo) UpdateTotals(_ context.Context, cart *model.Cart) error {
	f.carts[cart.ID] = cart
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.carts, id)
	delete(f.items, id)
	return nil
}

func (f *fakeCartRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeCartRepo) ListItems(_ context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	return append([]model.CartItem(nil), f.items[cartID]...), nil
}

func (f *fakeCartRepo) ListItemDetails(_ context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error) {
	var details []model.CartItemDetail
	for _, item := range f.items[cartID] {
		details = append(details, model.CartItemDetail{
			CartItem:     item,
			ProductName:  "item",
			CurrentPrice: item.UnitPrice,
			StockCount:   100,
			IsActive:     true,
		})
	}
	return details, nil
}

func (f *fakeCartRepo) FindItem(_ context.Context, cartID, productID uuid.UUID) (*model.CartItem, error) {
	for i := range f.items[cartID] {
		if f.items[cartID][i].ProductID == productID {
			return &f.items[cartID][i], nil
		}
	}
	return nil, model.ErrCartItemNotFound
}

func (f *fakeCartRepo) UpsertItem(_ context.Context, item *model.CartItem) error {
	for i := range f.items[item.CartID] {
		if f.items[item.CartID][i].ProductID == item.ProductID {
			f.items[item.CartID][i].Quantity += item.Quantity
			return nil
		}
	}
	f.items[item.CartID] = append(f.items[item.CartID], *item)
	return nil
}

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	for cartID := range f.items {
		for i := range f.items[cartID] {
			if f.items[cartID][i].ID == itemID {
				f.items[cartID][i].Quantity = quantity
				return nil
			}
		}
	}
	return model.ErrCartItemNotFound
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	for cartID := range f.items {
		for i := range f.items[cartID] {
			if f.items[cartID][i].ID == itemID {
				f.items[cartID] = append(f.items[cartID][:i], f.items[cartID][i+1:]...)
				return nil
			}
		}
	}
	return model.ErrCartItemNotFound
}

func (f *fakeCartRepo) ClearItems(_ context.Context, cartID uuid.UUID) error {
	delete(f.items, cartID)
	return nil
}

func (f *fakeCartRepo) MergeGuestCart(_ context.Context, _ string, _ uuid.UUID) error {
	return nil
}

func (f *fakeCartRepo) ClearWithTx(_ context.Context, _ pgx.Tx, cartID uuid.UUID) error {
	delete(f.items, cartID)
	return nil
}

type fakeProducts struct {
	price decimal.Decimal
}

func (f *fakeProducts) GetPurchaseInfo(_ context.Context, _ uuid.UUID) (decimal.Decimal, int, bool, error) {
	return f.price, 100, true, nil
}

// fakePercentCoupons grants 10% off above a minimum order amount.
type fakePercentCoupons struct {
	minOrder decimal.Decimal
}

func (f *fakePercentCoupons) ValidateCoupon(_ context.Context, req *couponModel.ValidateCouponRequest) (*couponModel.ValidationResult, error) {
	if req.Subtotal.LessThan(f.minOrder) {
		return &couponModel.ValidationResult{Valid: false, Message: "minimum order amount not met"}, nil
	}
	return &couponModel.ValidationResult{
		Valid:          true,
		Code:           req.Code,
		DiscountAmount: req.Subtotal.Mul(decimal.NewFromFloat(0.10)).Round(2),
	}, nil
}

func (f *fakePercentCoupons) ApplyToOrder(_ context.Context, _ pgx.Tx, _ string, _ *uuid.UUID, _ decimal.Decimal, _ []uuid.UUID, _ uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakePercentCoupons) ReleaseFromOrder(_ context.Context, _ pgx.Tx, _ uuid.UUID) error {
	return nil
}

func (f *fakePercentCoupons) Create(_ context.Context, _ *couponModel.CreateCouponRequest) (*couponModel.Coupon, error) {
	return nil, nil
}

func (f *fakePercentCoupons) Update(_ context.Context, _ uuid.UUID, _ *couponModel.UpdateCouponRequest) (*couponModel.Coupon, error) {
	return nil, nil
}

func (f *fakePercentCoupons) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakePercentCoupons) GetByID(_ context.Context, _ uuid.UUID) (*couponModel.Coupon, error) {
	return nil, nil
}

func (f *fakePercentCoupons) List(_ context.Context, _ *couponModel.ListCouponsFilter) ([]*couponModel.Coupon, int, error) {
	return nil, 0, nil
}

func TestCouponDiscountTracksCartChanges(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	owner := Owner{UserID: &userID}

	repo := newFakeCartRepo()
	svc := NewCartService(
		repo,
		&fakeProducts{price: decimal.NewFromInt(500)},
		&fakePercentCoupons{minOrder: decimal.NewFromInt(800)},
		nil,
	)

	resp, err := svc.AddItem(ctx, owner, &model.AddItemRequest{ProductID: uuid.New(), Quantity: 2})
	require.NoError(t, err)
	assert.True(t, resp.Totals.Subtotal.Equal(decimal.NewFromInt(1000)))

	resp, err = svc.ApplyCoupon(ctx, owner, &model.ApplyCouponRequest{Code: "FESTIVE10"})
	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(100)))

	cart, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	items, err := repo.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	t.Run("discount follows a growing subtotal", func(t *testing.T) {
		resp, err := svc.UpdateItem(ctx, owner, items[0].ID, &model.UpdateItemRequest{Quantity: 4})
		require.NoError(t, err)

		assert.True(t, resp.Totals.Subtotal.Equal(decimal.NewFromInt(2000)))
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(200)),
			"expected 200, got %s", resp.DiscountAmount)
	})

	t.Run("coupon below its minimum is dropped", func(t *testing.T) {
		resp, err := svc.UpdateItem(ctx, owner, items[0].ID, &model.UpdateItemRequest{Quantity: 1})
		require.NoError(t, err)

		assert.Nil(t, resp.CouponCode)
		assert.True(t, resp.DiscountAmount.IsZero())
	})
}
