package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/product/model"
	"jewelstore-backend/internal/domains/product/service"
	"jewelstore-backend/internal/shared/response"
)

// Multipart upload cap. The processor enforces its own per-image limit
// after decoding; this just bounds the request read.
const maxUploadBytes = 10 << 20

// AdminHandler exposes catalog management endpoints.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(productService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: productService}
}

// CreateProduct creates a catalog item.
//
// POST /v1/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidProduct, "validation failed", err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// UpdateProduct patches a catalog item.
//
// PATCH /v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidProduct, "validation failed", err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// DeleteProduct removes a catalog item and queues object-store cleanup.
//
// DELETE /v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetProduct returns a single product, inactive ones included.
//
// GET /v1/admin/products/:id
func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
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

// ListProducts lists the full catalog, inactive rows included.
//
// GET /v1/admin/products?search=kundan&page=1&limit=24
func (h *AdminHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))

	filter := &model.ListProductsFilter{
		Category:        c.Query("category"),
		Metal:           c.Query("metal"),
		Search:          c.Query("search"),
		Sort:            c.Query("sort"),
		IncludeInactive: true,
		Page:            page,
		Limit:           limit,
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

// UploadImage accepts a multipart image, stores the original and queues
// variant generation.
//
// POST /v1/admin/products/:id/images
func (h *AdminHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, "image too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	if err := h.service.UploadImage(c.Request.Context(), id, data); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			h.handleError(c, err)
			return
		}
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeInvalidProduct, err.Error())
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"processing": true})
}

// ImportCatalog ingests an xlsx sheet of products.
//
// POST /v1/admin/products/import
func (h *AdminHandler) ImportCatalog(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "spreadsheet file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	summary, err := h.service.ImportSpreadsheet(c.Request.Context(), file)
	if err != nil {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeImportFailed, err.Error())
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found")
	case errors.Is(err, model.ErrSlugTaken):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeSlugTaken, "a product with this name already exists")
	case errors.Is(err, model.ErrInvalidCategory):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidProduct, "unknown product category")
	default:
		response.InternalServerError(c, "product operation failed")
	}
}
