package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jewelstore-backend/internal/domains/product/model"
	"jewelstore-backend/internal/domains/product/service"
	"jewelstore-backend/internal/shared/response"
)

// PublicHandler serves the storefront catalog. Inactive products are
// never visible here.
type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(productService service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: productService}
}

// ListProducts returns the catalog with optional filters.
//
// GET /v1/products?category=rings&metal=gold&min_price=1000&sort=price_asc&page=1
func (h *PublicHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))

	filter := &model.ListProductsFilter{
		Category:     c.Query("category"),
		Metal:        c.Query("metal"),
		Search:       c.Query("search"),
		Sort:         c.Query("sort"),
		FeaturedOnly: c.Query("featured") == "true",
		Page:         page,
		Limit:        limit,
	}
	if v := c.Query("min_price"); v != "" {
		if min, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := c.Query("max_price"); v != "" {
		if max, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &max
		}
	}

	products, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

// GetProduct returns a single product by slug, with its image variants.
//
// GET /v1/products/:slug
func (h *PublicHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found")
			return
		}
		response.InternalServerError(c, "failed to load product")
		return
	}
	if !product.IsActive {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found")
		return
	}

	images, err := h.service.ListImages(c.Request.Context(), product.ID)
	if err != nil {
		response.InternalServerError(c, "failed to load product images")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"product": product,
		"images":  images,
	})
}
