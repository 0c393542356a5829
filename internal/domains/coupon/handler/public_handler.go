package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/coupon/model"
	"jewelstore-backend/internal/domains/coupon/service"
	"jewelstore-backend/internal/shared/response"
)

// PublicHandler exposes the customer-facing coupon endpoint.
type PublicHandler struct {
	service service.ServiceInterface
}

func NewPublicHandler(couponService service.ServiceInterface) *PublicHandler {
	return &PublicHandler{service: couponService}
}

// ValidateCoupon checks a coupon code against the caller's cart.
// Works for both signed-in customers and guests; allow-listed coupons
// simply come back invalid for guests.
//
// POST /v1/coupons/validate
func (h *PublicHandler) ValidateCoupon(c *gin.Context) {
	var req model.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidCoupon, "validation failed", err)
		return
	}

	req.UserID = userIDFromContext(c)

	result, err := h.service.ValidateCoupon(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrCouponNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCouponNotFound, "coupon not found")
			return
		}
		response.InternalServerError(c, "failed to validate coupon")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// userIDFromContext returns the authenticated user's ID, or nil for
// guests. Routes using OptionalAuthMiddleware may or may not set it.
func userIDFromContext(c *gin.Context) *uuid.UUID {
	v, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
