package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/review/model"
	"jewelstore-backend/internal/domains/review/service"
	"jewelstore-backend/internal/shared/response"
)

// NameResolver turns a customer id into the display name shown on
// published reviews. The user domain implements it.
type NameResolver interface {
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}

// ReviewHandler serves public review reads and customer submissions.
type ReviewHandler struct {
	service service.ServiceInterface
	names   NameResolver
}

func NewReviewHandler(reviewService service.ServiceInterface, names NameResolver) *ReviewHandler {
	return &ReviewHandler{service: reviewService, names: names}
}

// ListProductReviews returns approved reviews plus the rating summary.
//
// GET /v1/reviews?product_id=...&page=1
func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		response.BadRequest(c, "product_id query parameter is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, total, err := h.service.ListForProduct(c.Request.Context(), productID, page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list reviews")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), productID)
	if err != nil {
		response.InternalServerError(c, "failed to load rating summary")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"reviews": reviews,
		"summary": summary,
	}, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// CreateReview submits a review for a delivered product.
//
// POST /v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in to leave a review")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidReview, "validation failed", err)
		return
	}

	authorName, err := h.names.DisplayName(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to resolve reviewer")
		return
	}

	review, err := h.service.Create(c.Request.Context(), userID, authorName, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// DeleteReview lets a customer retract their own review.
//
// DELETE /v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, reviewID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeReviewNotFound, "review not found")
	case errors.Is(err, model.ErrNotPurchased):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotPurchased, "only customers who received this product can review it")
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeAlreadyReviewed, "you already reviewed this product")
	case errors.Is(err, model.ErrReviewNotYours):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeReviewNotFound, "review belongs to another customer")
	default:
		response.InternalServerError(c, "review operation failed")
	}
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
