package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/product/model"
)

// ServiceInterface is the product domain API. It also backs the cart's
// product reads and the order's stock reservations.
type ServiceInterface interface {
	// Public catalog
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filter *model.ListProductsFilter) ([]*model.Product, int, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)

	// Cart integration
	GetPurchaseInfo(ctx context.Context, productID uuid.UUID) (price decimal.Decimal, stock int, active bool, err error)

	// Order integration
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error
	RestoreStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error

	// Admin
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, productID uuid.UUID, data []byte) error
	ImportSpreadsheet(ctx context.Context, r io.Reader) (*model.ImportSummary, error)
}
