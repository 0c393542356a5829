package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"jewelstore-backend/internal/domains/review/model"
)

const reviewColumns = `
	id, product_id, customer_id, author_name,
	rating, title, body, is_approved,
	created_at, updated_at`

// PostgresRepository implements ReviewRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) ReviewRepository {
	return &PostgresRepository{db: db}
}

// -------------------------------------------------------------------
// READ OPERATIONS
// -------------------------------------------------------------------

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM product_reviews WHERE id = $1`

	review, err := r.scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return review, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter *model.ListReviewsFilter) ([]*model.ProductReview, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.ProductID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("product_id = $%d", argIndex))
		args = append(args, *filter.ProductID)
		argIndex++
	}
	if filter.ApprovedOnly {
		whereClauses = append(whereClauses, "is_approved = true")
	}
	if filter.PendingOnly {
		whereClauses = append(whereClauses, "is_approved = false")
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM product_reviews` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query := `SELECT ` + reviewColumns + ` FROM product_reviews` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*model.ProductReview{}
	for rows.Next() {
		review, err := r.scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, total, rows.Err()
}

func (r *PostgresRepository) Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM product_reviews WHERE customer_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) RatingSummary(ctx context.Context, productID uuid.UUID) (*model.RatingSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM product_reviews
		WHERE product_id = $1 AND is_approved = true`

	summary := &model.RatingSummary{ProductID: productID}
	if err := r.db.QueryRow(ctx, query, productID).Scan(&summary.ReviewCount, &summary.AverageRating); err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return summary, nil
}

// -------------------------------------------------------------------
// WRITE OPERATIONS
// -------------------------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, review *model.ProductReview) error {
	query := `
		INSERT INTO product_reviews (
			id, product_id, customer_id, author_name,
			rating, title, body, is_approved
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		review.ID, review.ProductID, review.CustomerID, review.AuthorName,
		review.Rating, review.Title, review.Body, review.IsApproved,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	query := `UPDATE product_reviews SET is_approved = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, approved)
	if err != nil {
		return fmt.Errorf("set review approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (r *PostgresRepository) scanReview(row pgx.Row) (*model.ProductReview, error) {
	review := &model.ProductReview{}
	err := row.Scan(
		&review.ID, &review.ProductID, &review.CustomerID, &review.AuthorName,
		&review.Rating, &review.Title, &review.Body, &review.IsApproved,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
