package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jewelstore-backend/internal/domains/product/model"
)

// ProductRepository persists the catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter *model.ListProductsFilter) ([]*model.Product, int, error)

	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Upsert matches on slug; used by the bulk import.
	UpsertBySlug(ctx context.Context, product *model.Product) (created bool, err error)

	// Stock moves inside the checkout/cancellation transactions.
	// DecrementStock folds the availability check into the UPDATE so
	// concurrent checkouts cannot oversell.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error
	RestoreStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error

	// SetRatingSummary stores the denormalized review aggregate.
	SetRatingSummary(ctx context.Context, productID uuid.UUID, average float64, count int) error

	// Images
	AddImage(ctx context.Context, img *model.ProductImage) error
	ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	DeleteImages(ctx context.Context, productID uuid.UUID) error
	SetPrimaryImageURL(ctx context.Context, productID uuid.UUID, url string) error
}
