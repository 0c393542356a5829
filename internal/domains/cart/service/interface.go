package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/cart/model"
)

// Owner identifies who the cart belongs to. Exactly one field is set:
// UserID for signed-in customers, SessionID for guests.
type Owner struct {
	UserID    *uuid.UUID
	SessionID *string
}

// ProductReader is the slice of the product domain the cart needs.
// Declared here to avoid a package cycle with product/service.
type ProductReader interface {
	GetPurchaseInfo(ctx context.Context, productID uuid.UUID) (price decimal.Decimal, stock int, active bool, err error)
}

// ServiceInterface is the cart domain API.
type ServiceInterface interface {
	GetCart(ctx context.Context, owner Owner) (*model.CartResponse, error)
	AddItem(ctx context.Context, owner Owner, req *model.AddItemRequest) (*model.CartResponse, error)
	UpdateItem(ctx context.Context, owner Owner, itemID uuid.UUID, req *model.UpdateItemRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, owner Owner, itemID uuid.UUID) (*model.CartResponse, error)
	ApplyCoupon(ctx context.Context, owner Owner, req *model.ApplyCouponRequest) (*model.CartResponse, error)
	RemoveCoupon(ctx context.Context, owner Owner) (*model.CartResponse, error)
	ClearCart(ctx context.Context, owner Owner) error

	// MergeGuestCart runs on sign-in.
	MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error

	// Checkout integration
	GetCartForCheckout(ctx context.Context, owner Owner) (*model.Cart, []model.CartItemDetail, error)
	ClearAfterCheckout(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error

	// CleanupExpired is run by the worker on a schedule.
	CleanupExpired(ctx context.Context) (int64, error)
}
