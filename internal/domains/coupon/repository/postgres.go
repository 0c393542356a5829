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
	"github.com/lib/pq"

	"jewelstore-backend/internal/domains/coupon/model"
)

const couponColumns = `
	id, code, description,
	type, value, minimum_order_amount, maximum_discount_amount,
	usage_limit, user_usage_limit, usage_count,
	valid_from, valid_until,
	allowed_users, excluded_users, applicable_products, excluded_products,
	is_active, created_at, updated_at`

// PostgresRepository implements CouponRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) CouponRepository {
	return &PostgresRepository{db: db}
}

// -------------------------------------------------------------------
// READ OPERATIONS
// -------------------------------------------------------------------

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	c, err := r.scanCoupon(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon by id: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE UPPER(code) = UPPER($1)`

	c, err := r.scanCoupon(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon by code: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	switch filter.Status {
	case "active":
		whereClauses = append(whereClauses, "is_active = true", "valid_from <= NOW()", "valid_until >= NOW()")
	case "expired":
		whereClauses = append(whereClauses, "valid_until < NOW()")
	case "upcoming":
		whereClauses = append(whereClauses, "valid_from > NOW()")
	case "inactive":
		whereClauses = append(whereClauses, "is_active = false")
	}

	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(code ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM coupons` + where
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}

	query := `SELECT ` + couponColumns + ` FROM coupons` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*model.Coupon
	for rows.Next() {
		c, err := r.scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

func (r *PostgresRepository) GetUserUsageCount(ctx context.Context, couponID, userID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(usage_count, 0)
		FROM user_coupons
		WHERE coupon_id = $1 AND user_id = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, couponID, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get user usage count: %w", err)
	}
	return count, nil
}

// -------------------------------------------------------------------
// ADMIN WRITE OPERATIONS
// -------------------------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (
			id, code, description,
			type, value, minimum_order_amount, maximum_discount_amount,
			usage_limit, user_usage_limit, usage_count,
			valid_from, valid_until,
			allowed_users, excluded_users, applicable_products, excluded_products,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, 0,
			$10, $11, $12, $13, $14, $15, $16, NOW(), NOW()
		)
	`

	_, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.Description,
		coupon.Type,
		coupon.Value,
		coupon.MinimumOrderAmount,
		coupon.MaximumDiscountAmount,
		coupon.UsageLimit,
		coupon.UserUsageLimit,
		coupon.ValidFrom,
		coupon.ValidUntil,
		pq.Array(coupon.AllowedUsers),
		pq.Array(coupon.ExcludedUsers),
		pq.Array(coupon.ApplicableProducts),
		pq.Array(coupon.ExcludedProducts),
		coupon.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrCouponCodeTaken
		}
		return fmt.Errorf("create coupon: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons SET
			description = $2,
			value = $3,
			minimum_order_amount = $4,
			maximum_discount_amount = $5,
			usage_limit = $6,
			user_usage_limit = $7,
			valid_from = $8,
			valid_until = $9,
			allowed_users = $10,
			excluded_users = $11,
			applicable_products = $12,
			excluded_products = $13,
			is_active = $14,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Description,
		coupon.Value,
		coupon.MinimumOrderAmount,
		coupon.MaximumDiscountAmount,
		coupon.UsageLimit,
		coupon.UserUsageLimit,
		coupon.ValidFrom,
		coupon.ValidUntil,
		pq.Array(coupon.AllowedUsers),
		pq.Array(coupon.ExcludedUsers),
		pq.Array(coupon.ApplicableProducts),
		pq.Array(coupon.ExcludedProducts),
		coupon.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// REDEMPTION
// -------------------------------------------------------------------

// RedeemForOrderWithTx records the redemption and bumps the counters.
//
// Step 1: insert the redemption row. ON CONFLICT (order_id) DO NOTHING
// makes a retried checkout a no-op, so the counters below only run once
// per order.
// Step 2: increment usage_count with the limit check folded into the
// WHERE clause. Two concurrent checkouts racing for the last slot both
// pass the read-time eligibility check, but only one UPDATE matches.
func (r *PostgresRepository) RedeemForOrderWithTx(ctx context.Context, tx pgx.Tx, redemption *model.CouponRedemption) error {
	insertQuery := `
		INSERT INTO coupon_redemptions (id, coupon_id, user_id, order_id, discount_amount, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO NOTHING
	`

	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}
	if redemption.RedeemedAt.IsZero() {
		redemption.RedeemedAt = time.Now()
	}

	tag, err := tx.Exec(ctx, insertQuery,
		redemption.ID,
		redemption.CouponID,
		redemption.UserID,
		redemption.OrderID,
		redemption.DiscountAmount,
		redemption.RedeemedAt,
	)
	if err != nil {
		return fmt.Errorf("insert coupon redemption: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already redeemed for this order.
		return nil
	}

	incrementQuery := `
		UPDATE coupons
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1
		  AND (usage_limit IS NULL OR usage_count < usage_limit)
	`

	tag, err = tx.Exec(ctx, incrementQuery, redemption.CouponID)
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponExhausted
	}

	if redemption.UserID != nil {
		userQuery := `
			INSERT INTO user_coupons (id, user_id, coupon_id, usage_count, last_used_at)
			VALUES ($1, $2, $3, 1, NOW())
			ON CONFLICT (user_id, coupon_id)
			DO UPDATE SET usage_count = user_coupons.usage_count + 1, last_used_at = NOW()
		`
		if _, err := tx.Exec(ctx, userQuery, uuid.New(), *redemption.UserID, redemption.CouponID); err != nil {
			return fmt.Errorf("upsert user coupon usage: %w", err)
		}
	}

	return nil
}

// ReleaseForOrderWithTx reverses RedeemForOrderWithTx for a cancelled
// order. Deleting the redemption row first keeps the operation
// idempotent the same way.
func (r *PostgresRepository) ReleaseForOrderWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	var couponID uuid.UUID
	var userID *uuid.UUID

	deleteQuery := `
		DELETE FROM coupon_redemptions
		WHERE order_id = $1
		RETURNING coupon_id, user_id
	`

	err := tx.QueryRow(ctx, deleteQuery, orderID).Scan(&couponID, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("delete coupon redemption: %w", err)
	}

	decrementQuery := `
		UPDATE coupons
		SET usage_count = GREATEST(usage_count - 1, 0), updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, decrementQuery, couponID); err != nil {
		return fmt.Errorf("decrement coupon usage: %w", err)
	}

	if userID != nil {
		userQuery := `
			UPDATE user_coupons
			SET usage_count = GREATEST(usage_count - 1, 0)
			WHERE user_id = $1 AND coupon_id = $2
		`
		if _, err := tx.Exec(ctx, userQuery, *userID, couponID); err != nil {
			return fmt.Errorf("decrement user coupon usage: %w", err)
		}
	}

	return nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (r *PostgresRepository) scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.Type,
		&c.Value,
		&c.MinimumOrderAmount,
		&c.MaximumDiscountAmount,
		&c.UsageLimit,
		&c.UserUsageLimit,
		&c.UsageCount,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.AllowedUsers,
		&c.ExcludedUsers,
		&c.ApplicableProducts,
		&c.ExcludedProducts,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
