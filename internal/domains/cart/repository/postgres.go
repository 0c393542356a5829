package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelstore-backend/internal/domains/cart/model"
)

const cartColumns = `
	id, user_id, session_id,
	coupon_code, discount_amount,
	subtotal, estimated_tax, estimated_shipping, estimated_total,
	expires_at, created_at, updated_at`

// PostgresRepository implements CartRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) CartRepository {
	return &PostgresRepository{db: db}
}

// -------------------------------------------------------------------
// CART LOOKUP
// -------------------------------------------------------------------

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1`
	return r.findOne(ctx, query, userID)
}

func (r *PostgresRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE session_id = $1`
	return r.findOne(ctx, query, sessionID)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Cart, error) {
	var c model.Cart
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID,
		&c.UserID,
		&c.SessionID,
		&c.CouponCode,
		&c.DiscountAmount,
		&c.Subtotal,
		&c.EstimatedTax,
		&c.EstimatedShipping,
		&c.EstimatedTotal,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &c, nil
}

// -------------------------------------------------------------------
// CART WRITE
// -------------------------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, cart *model.Cart) error {
	query := `
		INSERT INTO carts (
			id, user_id, session_id,
			coupon_code, discount_amount,
			subtotal, estimated_tax, estimated_shipping, estimated_total,
			expires_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		cart.ID,
		cart.UserID,
		cart.SessionID,
		cart.CouponCode,
		cart.DiscountAmount,
		cart.Subtotal,
		cart.EstimatedTax,
		cart.EstimatedShipping,
		cart.EstimatedTotal,
		cart.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create cart: %w", err)
	}
	return nil
}

// UpdateTotals writes the recomputed totals, the coupon fields and the
// refreshed expiry in one statement.
func (r *PostgresRepository) UpdateTotals(ctx context.Context, cart *model.Cart) error {
	query := `
		UPDATE carts SET
			coupon_code = $2,
			discount_amount = $3,
			subtotal = $4,
			estimated_tax = $5,
			estimated_shipping = $6,
			estimated_total = $7,
			expires_at = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		cart.ID,
		cart.CouponCode,
		cart.DiscountAmount,
		cart.Subtotal,
		cart.EstimatedTax,
		cart.EstimatedShipping,
		cart.EstimatedTotal,
		cart.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update cart totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// DeleteExpired removes stale carts; items cascade. Run by the worker.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM carts WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired carts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// -------------------------------------------------------------------
// ITEMS
// -------------------------------------------------------------------

func (r *PostgresRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListItemDetails(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT
			ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
			ci.created_at, ci.updated_at,
			p.name AS product_name,
			p.slug AS product_slug,
			p.primary_image_url AS image_url,
			p.price AS current_price,
			p.stock_count,
			p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.db.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart item details: %w", err)
	}
	defer rows.Close()

	var details []model.CartItemDetail
	for rows.Next() {
		var d model.CartItemDetail
		err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ProductName,
			&d.ProductSlug,
			&d.ImageURL,
			&d.CurrentPrice,
			&d.StockCount,
			&d.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PostgresRepository) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	var it model.CartItem
	err := r.db.QueryRow(ctx, query, cartID, productID).Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return &it, nil
}

// UpsertItem adds a line or bumps its quantity when the product is
// already in the cart. The snapshot price is kept from the first add.
func (r *PostgresRepository) UpsertItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, $6),
			updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice,
		model.MaxQuantityPerItem,
	)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $2, updated_at = NOW() WHERE id = $1`,
		itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *PostgresRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ClearWithTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	query := `
		UPDATE carts SET
			coupon_code = NULL,
			discount_amount = 0,
			subtotal = 0,
			estimated_tax = 0,
			estimated_shipping = 0,
			estimated_total = 0,
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, cartID); err != nil {
		return fmt.Errorf("reset cart totals: %w", err)
	}
	return nil
}

// -------------------------------------------------------------------
// MERGE
// -------------------------------------------------------------------

// MergeGuestCart folds a guest cart into the user's cart after sign-in.
// Quantities for the same product are summed, capped at the per-item
// limit. The guest cart is removed afterwards.
func (r *PostgresRepository) MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin merge tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var guestCartID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE session_id = $1`, sessionID).Scan(&guestCartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("find guest cart: %w", err)
	}

	var userCartID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&userCartID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No user cart yet: claim the guest cart wholesale.
		_, err = tx.Exec(ctx,
			`UPDATE carts SET user_id = $1, session_id = NULL, expires_at = NOW() + make_interval(days => $2), updated_at = NOW() WHERE id = $3`,
			userID, model.UserCartExpirationDays, guestCartID,
		)
		if err != nil {
			return fmt.Errorf("claim guest cart: %w", err)
		}
		return tx.Commit(ctx)
	}
	if err != nil {
		return fmt.Errorf("find user cart: %w", err)
	}

	mergeQuery := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at, updated_at)
		SELECT gen_random_uuid(), $1, product_id, quantity, unit_price, NOW(), NOW()
		FROM cart_items
		WHERE cart_id = $2
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET
			quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, $3),
			updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, mergeQuery, userCartID, guestCartID, model.MaxQuantityPerItem); err != nil {
		return fmt.Errorf("merge cart items: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, guestCartID); err != nil {
		return fmt.Errorf("drop guest cart: %w", err)
	}

	return tx.Commit(ctx)
}
