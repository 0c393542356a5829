package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/order/model"
	"jewelstore-backend/internal/domains/order/service"
	"jewelstore-backend/internal/shared/response"
)

// AdminHandler exposes back-office order management.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(orderService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: orderService}
}

// ListOrders lists all orders with filters.
//
// GET /v1/admin/orders?status=processing&search=JW-&page=1
func (h *AdminHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := &model.ListOrdersFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	orders, total, err := h.service.ListOrdersAdmin(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "failed to list orders")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page: filter.Page, Limit: filter.Limit, Total: total,
	})
}

// GetOrder returns any order with its items.
//
// GET /v1/admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.service.GetOrderAdmin(c.Request.Context(), orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// UpdateStatus applies a status transition as the admin actor.
// Shipping requires a tracking number; the delivery estimate is
// computed when not supplied.
//
// PATCH /v1/admin/orders/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidTransition, "validation failed", err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, model.ActorAdmin, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	var transitionErr *model.TransitionError
	if errors.As(err, &transitionErr) {
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, transitionErr.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found")
	case errors.Is(err, model.ErrOrderConflict):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeOrderConflict, "order was modified, retry")
	default:
		response.InternalServerError(c, "order operation failed")
	}
}
