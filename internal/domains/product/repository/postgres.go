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

	"jewelstore-backend/internal/domains/product/model"
)

const productColumns = `
	id, name, slug, description, category,
	metal, purity, gemstone, weight_grams,
	price, compare_at_price, stock_count,
	primary_image_url, is_active, is_featured,
	rating_average, review_count,
	created_at, updated_at`

// PostgresRepository implements ProductRepository on PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance.
func NewPostgresRepository(db *pgxpool.Pool) ProductRepository {
	return &PostgresRepository{db: db}
}

// -------------------------------------------------------------------
// READ
// -------------------------------------------------------------------

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, slug))
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter *model.ListProductsFilter) ([]*model.Product, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if !filter.IncludeInactive {
		whereClauses = append(whereClauses, "is_active = true")
	}
	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Metal != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(metal) = LOWER($%d)", argIndex))
		args = append(args, filter.Metal)
		argIndex++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.FeaturedOnly {
		whereClauses = append(whereClauses, "is_featured = true")
	}

	where := ""
	if len(whereClauses) > 0 {
		where = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy := " ORDER BY created_at DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = " ORDER BY price ASC"
	case "price_desc":
		orderBy = " ORDER BY price DESC"
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// -------------------------------------------------------------------
// WRITE
// -------------------------------------------------------------------

func (r *PostgresRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, description, category,
			metal, purity, gemstone, weight_grams,
			price, compare_at_price, stock_count,
			primary_image_url, is_active, is_featured,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Slug, product.Description, product.Category,
		product.Metal, product.Purity, product.Gemstone, product.WeightGrams,
		product.Price, product.CompareAtPrice, product.StockCount,
		product.PrimaryImageURL, product.IsActive, product.IsFeatured,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrSlugTaken
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, category = $4,
			metal = $5, purity = $6, gemstone = $7, weight_grams = $8,
			price = $9, compare_at_price = $10, stock_count = $11,
			is_active = $12, is_featured = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Metal, product.Purity, product.Gemstone, product.WeightGrams,
		product.Price, product.CompareAtPrice, product.StockCount,
		product.IsActive, product.IsFeatured,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) UpsertBySlug(ctx context.Context, product *model.Product) (bool, error) {
	query := `
		INSERT INTO products (
			id, name, slug, description, category,
			metal, purity, gemstone, weight_grams,
			price, compare_at_price, stock_count,
			primary_image_url, is_active, is_featured,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			metal = EXCLUDED.metal,
			purity = EXCLUDED.purity,
			gemstone = EXCLUDED.gemstone,
			weight_grams = EXCLUDED.weight_grams,
			price = EXCLUDED.price,
			compare_at_price = EXCLUDED.compare_at_price,
			stock_count = EXCLUDED.stock_count,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Slug, product.Description, product.Category,
		product.Metal, product.Purity, product.Gemstone, product.WeightGrams,
		product.Price, product.CompareAtPrice, product.StockCount,
		product.PrimaryImageURL, product.IsActive, product.IsFeatured,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert product: %w", err)
	}
	return inserted, nil
}

// -------------------------------------------------------------------
// STOCK
// -------------------------------------------------------------------

// DecrementStockWithTx takes stock with the availability check in the
// WHERE clause. Zero rows means either an unknown product or not
// enough stock; the caller treats both as a failed reservation.
func (r *PostgresRepository) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock_count = stock_count - $2, updated_at = NOW()
		WHERE id = $1 AND stock_count >= $2
	`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOutOfStock
	}
	return nil
}

func (r *PostgresRepository) RestoreStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock_count = stock_count + $2, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, query, productID, quantity); err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}

// -------------------------------------------------------------------
// IMAGES
// -------------------------------------------------------------------

func (r *PostgresRepository) AddImage(ctx context.Context, img *model.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, object_key, thumbnail_url, medium_url, large_url, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		img.ID, img.ProductID, img.ObjectKey, img.ThumbnailURL, img.MediumURL, img.LargeURL, img.Position,
	)
	if err != nil {
		return fmt.Errorf("add product image: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	query := `
		SELECT id, product_id, object_key, thumbnail_url, medium_url, large_url, position, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	var images []model.ProductImage
	for rows.Next() {
		var img model.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ObjectKey, &img.ThumbnailURL, &img.MediumURL, &img.LargeURL, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *PostgresRepository) DeleteImages(ctx context.Context, productID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

// SetRatingSummary writes the denormalized review aggregate. Review
// moderation recomputes and pushes it here.
func (r *PostgresRepository) SetRatingSummary(ctx context.Context, productID uuid.UUID, average float64, count int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET rating_average = $2, review_count = $3, updated_at = NOW() WHERE id = $1`,
		productID, average, count,
	)
	if err != nil {
		return fmt.Errorf("set rating summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPrimaryImageURL(ctx context.Context, productID uuid.UUID, url string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET primary_image_url = $2, updated_at = NOW() WHERE id = $1`,
		productID, url,
	)
	if err != nil {
		return fmt.Errorf("set primary image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func (r *PostgresRepository) scanOne(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category,
		&p.Metal, &p.Purity, &p.Gemstone, &p.WeightGrams,
		&p.Price, &p.CompareAtPrice, &p.StockCount,
		&p.PrimaryImageURL, &p.IsActive, &p.IsFeatured,
		&p.RatingAverage, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
