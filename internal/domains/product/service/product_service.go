package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/product/model"
	"jewelstore-backend/internal/domains/product/repository"
	"jewelstore-backend/internal/infrastructure/storage"
	"jewelstore-backend/internal/shared"
	"jewelstore-backend/internal/shared/utils"
	"jewelstore-backend/pkg/cache"
	"jewelstore-backend/pkg/logger"
)

type productService struct {
	repo      repository.ProductRepository
	minio     *storage.MinIOStorage
	processor *storage.ImageProcessor
	asynq     *asynq.Client
	cache     cache.Cache
}

// NewProductService wires the product domain.
func NewProductService(
	repo repository.ProductRepository,
	minioStorage *storage.MinIOStorage,
	processor *storage.ImageProcessor,
	asynqClient *asynq.Client,
	c cache.Cache,
) ServiceInterface {
	return &productService{
		repo:      repo,
		minio:     minioStorage,
		processor: processor,
		asynq:     asynqClient,
		cache:     c,
	}
}

// -------------------------------------------------------------------
// PUBLIC CATALOG
// -------------------------------------------------------------------

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *productService) List(ctx context.Context, filter *model.ListProductsFilter) ([]*model.Product, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *productService) ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	return s.repo.ListImages(ctx, productID)
}

// -------------------------------------------------------------------
// CART / ORDER INTEGRATION
// -------------------------------------------------------------------

func (s *productService) GetPurchaseInfo(ctx context.Context, productID uuid.UUID) (decimal.Decimal, int, bool, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return decimal.Zero, 0, false, err
	}
	return p.Price, p.StockCount, p.IsActive, nil
}

func (s *productService) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	return s.repo.DecrementStockWithTx(ctx, tx, productID, quantity)
}

func (s *productService) RestoreStockWithTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	return s.repo.RestoreStockWithTx(ctx, tx, productID, quantity)
}

// -------------------------------------------------------------------
// ADMIN
// -------------------------------------------------------------------

func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	product := req.ToProduct()
	product.ID = uuid.New()

	slug, err := s.uniqueSlug(ctx, product.Name)
	if err != nil {
		return nil, err
	}
	product.Slug = slug

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductUpdate(product, req)

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteImages(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Object-store cleanup is queued; the catalog row is already gone.
	s.enqueueImageCleanup(id)
	return nil
}

// UploadImage validates and stores the original, then queues variant
// generation for the worker.
func (s *productService) UploadImage(ctx context.Context, productID uuid.UUID, data []byte) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return err
	}
	if err := s.processor.ValidateImage(data); err != nil {
		return err
	}

	objectKey := fmt.Sprintf("products/%s/%s/original.jpg", productID, uuid.New())
	if _, err := s.minio.Upload(ctx, objectKey, data, "image/jpeg"); err != nil {
		return err
	}

	payload := shared.ProductImagePayload{
		ProductID: productID.String(),
		ObjectKey: objectKey,
	}
	task, err := utils.MarshalTask(shared.TypeProcessProductImage, payload)
	if err != nil {
		return err
	}
	if _, err := s.asynq.Enqueue(task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue image processing: %w", err)
	}
	return nil
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

// uniqueSlug derives the URL slug from the name, suffixing a counter
// on collision.
func (s *productService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *productService) enqueueImageCleanup(productID uuid.UUID) {
	if s.asynq == nil {
		return
	}
	payload := shared.ProductImagePayload{ProductID: productID.String()}
	task, err := utils.MarshalTask(shared.TypeDeleteProductImages, payload)
	if err != nil {
		logger.Error("failed to build image cleanup task", err)
		return
	}
	if _, err := s.asynq.Enqueue(task, asynq.Queue(shared.QueueLow)); err != nil {
		logger.Error("failed to enqueue image cleanup", err)
	}
}

func applyProductUpdate(p *model.Product, req *model.UpdateProductRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Category != nil {
		p.Category = model.Category(*req.Category)
	}
	if req.Metal != nil {
		p.Metal = *req.Metal
	}
	if req.Purity != nil {
		p.Purity = req.Purity
	}
	if req.Gemstone != nil {
		p.Gemstone = req.Gemstone
	}
	if req.WeightGrams != nil {
		w := decimal.NewFromFloat(*req.WeightGrams)
		p.WeightGrams = &w
	}
	if req.Price != nil {
		p.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.CompareAtPrice != nil {
		cp := decimal.NewFromFloat(*req.CompareAtPrice)
		p.CompareAtPrice = &cp
	}
	if req.StockCount != nil {
		p.StockCount = *req.StockCount
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
}
