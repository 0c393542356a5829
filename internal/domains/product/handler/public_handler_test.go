package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelstore-backend/internal/domains/product/model"
)

// fakeCatalogService records the filter the handler builds.
type fakeCatalogService struct {
	lastFilter *model.ListProductsFilter
}

func (f *fakeCatalogService) GetByID(_ context.Context, _ uuid.UUID) (*model.Product, error) {
	return nil, model.ErrProductNotFound
}

func (f *fakeCatalogService) GetBySlug(_ context.Context, _ string) (*model.Product, error) {
	return nil, model.ErrProductNotFound
}

func (f *fakeCatalogService) List(_ context.Context, filter *model.ListProductsFilter) ([]*model.Product, int, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeCatalogService) ListImages(_ context.Context, _ uuid.UUID) ([]model.ProductImage, error) {
	return nil, nil
}

func (f *fakeCatalogService) GetPurchaseInfo(_ context.Context, _ uuid.UUID) (decimal.Decimal, int, bool, error) {
	return decimal.Zero, 0, false, nil
}

func (f *fakeCatalogService) DecrementStockWithTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, _ int) error {
	return nil
}

func (f *fakeCatalogService) RestoreStockWithTx(_ context.Context, _ pgx.Tx, _ uuid.UUID, _ int) error {
	return nil
}

func (f *fakeCatalogService) Create(_ context.Context, _ *model.CreateProductRequest) (*model.Product, error) {
	return nil, nil
}

func (f *fakeCatalogService) Update(_ context.Context, _ uuid.UUID, _ *model.UpdateProductRequest) (*model.Product, error) {
	return nil, nil
}

func (f *fakeCatalogService) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (f *fakeCatalogService) UploadImage(_ context.Context, _ uuid.UUID, _ []byte) error {
	return nil
}

func (f *fakeCatalogService) ImportSpreadsheet(_ context.Context, _ io.Reader) (*model.ImportSummary, error) {
	return nil, nil
}

func TestListProductsPriceFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listProducts := func(t *testing.T, query string) *model.ListProductsFilter {
		t.Helper()

		svc := &fakeCatalogService{}
		router := gin.New()
		router.GET("/products", NewPublicHandler(svc).ListProducts)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.lastFilter)
		return svc.lastFilter
	}

	t.Run("price bounds parse as decimals", func(t *testing.T) {
		filter := listProducts(t, "?min_price=1500.50&max_price=80000")

		require.NotNil(t, filter.MinPrice)
		require.NotNil(t, filter.MaxPrice)
		assert.True(t, filter.MinPrice.Equal(decimal.RequireFromString("1500.50")))
		assert.True(t, filter.MaxPrice.Equal(decimal.NewFromInt(80000)))
	})

	t.Run("unparseable bounds are ignored", func(t *testing.T) {
		filter := listProducts(t, "?min_price=cheap&max_price=")

		assert.Nil(t, filter.MinPrice)
		assert.Nil(t, filter.MaxPrice)
	})
}
