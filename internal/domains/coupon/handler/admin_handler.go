package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/coupon/model"
	"jewelstore-backend/internal/domains/coupon/service"
	"jewelstore-backend/internal/shared/response"
)

// AdminHandler exposes coupon management endpoints. All routes sit
// behind the manage-coupons capability.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(couponService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: couponService}
}

// CreateCoupon creates a new coupon.
//
// POST /v1/admin/coupons
func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidCoupon, "validation failed", err)
		return
	}

	coupon, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// UpdateCoupon updates an existing coupon.
//
// PATCH /v1/admin/coupons/:id
func (h *AdminHandler) UpdateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	var req model.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidCoupon, "validation failed", err)
		return
	}

	coupon, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// DeleteCoupon removes a coupon.
//
// DELETE /v1/admin/coupons/:id
func (h *AdminHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetCoupon returns a single coupon.
//
// GET /v1/admin/coupons/:id
func (h *AdminHandler) GetCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	coupon, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// ListCoupons lists coupons with status/search filters.
//
// GET /v1/admin/coupons?status=active&search=DIWALI&page=1&limit=20
func (h *AdminHandler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := &model.ListCouponsFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	coupons, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to list coupons")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, coupons, &response.Meta{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
	})
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	var couponErr *model.CouponError
	if errors.As(err, &couponErr) {
		status := http.StatusBadRequest
		if couponErr.Code == model.ErrCodeCouponCodeTaken {
			status = http.StatusConflict
		}
		response.ErrorResponse(c, status, couponErr.Code, couponErr.Message)
		return
	}

	if errors.Is(err, model.ErrCouponNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCouponNotFound, "coupon not found")
		return
	}

	response.InternalServerError(c, "coupon operation failed")
}
