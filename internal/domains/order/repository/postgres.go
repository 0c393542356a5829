package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelstore-backend/internal/domains/order/model"
)

const orderColumns = `
	id, confirmation_number,
	customer_id, is_guest_order, email, phone,
	subtotal, tax, shipping, coupon_code, coupon_discount, total,
	status, payment_method, payment_status,
	gateway_order_id, gateway_payment_id,
	shipping_address, billing_address,
	shipping_method, tracking_number, estimated_delivery_date,
	shipped_at, delivered_at, cancelled_at,
	version, created_at, updated_at`

// PostgresRepository implements OrderRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) OrderRepository {
	return &PostgresRepository{db: db}
}

// -------------------------------------------------------------------
// READ
// -------------------------------------------------------------------

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindByConfirmationNumber(ctx context.Context, confirmationNumber string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE confirmation_number = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(confirmationNumber))))
}

func (r *PostgresRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, gatewayOrderID))
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	where := " WHERE customer_id = $1 AND is_guest_order = false"
	args := []interface{}{customerID}
	argIndex := 2

	if filter.Status != "" && filter.Status != "all" {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	return r.list(ctx, where, args, argIndex, filter)
}

func (r *PostgresRepository) ListAdmin(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" && filter.Status != "all" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(confirmation_number ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	return r.list(ctx, where, args, argIndex, filter)
}

func (r *PostgresRepository) list(ctx context.Context, where string, args []interface{}, argIndex int, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *PostgresRepository) ListItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// -------------------------------------------------------------------
// WRITE
// -------------------------------------------------------------------

func (r *PostgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.OrderItem) error {
	query := `
		INSERT INTO orders (
			id, confirmation_number,
			customer_id, is_guest_order, email, phone,
			subtotal, tax, shipping, coupon_code, coupon_discount, total,
			status, payment_method, payment_status,
			gateway_order_id, gateway_payment_id,
			shipping_address, billing_address,
			shipping_method, tracking_number, estimated_delivery_date,
			version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
			1, NOW(), NOW()
		)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.ConfirmationNumber,
		order.CustomerID,
		order.IsGuestOrder,
		order.Email,
		order.Phone,
		order.Subtotal,
		order.Tax,
		order.Shipping,
		order.CouponCode,
		order.CouponDiscount,
		order.Total,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.GatewayOrderID,
		order.GatewayPaymentID,
		order.ShippingAddress,
		order.BillingAddress,
		order.ShippingMethod,
		order.TrackingNumber,
		order.EstimatedDeliveryDate,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for i := range items {
		it := &items[i]
		if _, err := tx.Exec(ctx, itemQuery,
			it.ID, order.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.TotalPrice,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

// NextConfirmationSequence bumps the per-day counter atomically.
func (r *PostgresRepository) NextConfirmationSequence(ctx context.Context, tx pgx.Tx, day time.Time) (int64, error) {
	query := `
		INSERT INTO order_daily_sequences (day, seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET seq = order_daily_sequences.seq + 1
		RETURNING seq
	`

	var seq int64
	if err := tx.QueryRow(ctx, query, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next confirmation sequence: %w", err)
	}
	return seq, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	return r.updateStatus(ctx, r.db, order)
}

func (r *PostgresRepository) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	return r.updateStatus(ctx, tx, order)
}

// execer lets updateStatus run against both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// updateStatus writes the status and its companion fields. The version
// predicate rejects lost updates: two admins acting on the same order
// at once cannot both win.
func (r *PostgresRepository) updateStatus(ctx context.Context, db execer, order *model.Order) error {
	query := `
		UPDATE orders SET
			status = $2,
			tracking_number = $3,
			estimated_delivery_date = $4,
			shipped_at = $5,
			delivered_at = $6,
			cancelled_at = $7,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $8
	`

	tag, err := db.Exec(ctx, query,
		order.ID,
		order.Status,
		order.TrackingNumber,
		order.EstimatedDeliveryDate,
		order.ShippedAt,
		order.DeliveredAt,
		order.CancelledAt,
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderConflict
	}
	order.Version++
	return nil
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus, gatewayPaymentID *string) error {
	query := `
		UPDATE orders SET
			payment_status = $2,
			gateway_payment_id = COALESCE($3, gateway_payment_id),
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, orderID, status, gatewayPaymentID)
	if err != nil {
		return fmt.Errorf("update order payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// SWEEPS & LOOKUPS
// -------------------------------------------------------------------

func (r *PostgresRepository) ListShippedPastEstimate(ctx context.Context, asOf time.Time, limit int) ([]*model.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1
		  AND estimated_delivery_date IS NOT NULL
		  AND estimated_delivery_date < $2
		ORDER BY estimated_delivery_date
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, model.StatusShipped, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("list shipped past estimate: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		o, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) HasDeliveredOrderItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.customer_id = $1
			  AND o.status = $2
			  AND oi.product_id = $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID, model.StatusDelivered, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check delivered order item: %w", err)
	}
	return exists, nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (r *PostgresRepository) scanOne(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.ConfirmationNumber,
		&o.CustomerID,
		&o.IsGuestOrder,
		&o.Email,
		&o.Phone,
		&o.Subtotal,
		&o.Tax,
		&o.Shipping,
		&o.CouponCode,
		&o.CouponDiscount,
		&o.Total,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.GatewayOrderID,
		&o.GatewayPaymentID,
		&o.ShippingAddress,
		&o.BillingAddress,
		&o.ShippingMethod,
		&o.TrackingNumber,
		&o.EstimatedDeliveryDate,
		&o.ShippedAt,
		&o.DeliveredAt,
		&o.CancelledAt,
		&o.Version,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}
