package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/review/model"
	"jewelstore-backend/internal/domains/review/service"
	"jewelstore-backend/internal/shared/response"
)

// AdminHandler exposes the review moderation queue.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(reviewService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: reviewService}
}

// ListPending lists reviews awaiting moderation.
//
// GET /v1/admin/reviews/pending?page=1
func (h *AdminHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, total, err := h.service.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		response.InternalServerError(c, "failed to list pending reviews")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reviews, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Moderate approves or rejects a review.
//
// PATCH /v1/admin/reviews/:id
func (h *AdminHandler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.service.Moderate(c.Request.Context(), id, req.Approve); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"approved": req.Approve})
}

// DeleteReview removes a review outright.
//
// DELETE /v1/admin/reviews/:id
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	if err := h.service.AdminDelete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrReviewNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeReviewNotFound, "review not found")
		return
	}
	response.InternalServerError(c, "review operation failed")
}
