package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jewelstore-backend/internal/domains/cart/model"
)

// CartRepository persists carts and their items.
type CartRepository interface {
	// Cart lookup by owner. Both return model.ErrCartNotFound when absent.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cart, error)

	Create(ctx context.Context, cart *model.Cart) error
	UpdateTotals(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)

	// Items
	ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)
	ListItemDetails(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error)
	UpsertItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// MergeGuestCart moves a guest cart's items into the user's cart on
	// sign-in, summing quantities for duplicate products.
	MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error

	// ClearWithTx empties the cart inside the checkout transaction.
	ClearWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}
