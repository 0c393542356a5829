package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartModel "jewelstore-backend/internal/domains/cart/model"
	couponModel "jewelstore-backend/internal/domains/coupon/model"
	"jewelstore-backend/internal/domains/order/model"
	"jewelstore-backend/internal/domains/order/service"
	"jewelstore-backend/internal/shared/response"
)

// OrderHandler serves the customer-facing order endpoints. Checkout
// and track-order work for guests; the rest require an account.
type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(orderService service.ServiceInterface) *OrderHandler {
	return &OrderHandler{service: orderService}
}

// Checkout places an order from the caller's cart.
//
// POST /v1/orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeCheckoutFailed, "validation failed", err)
		return
	}

	identity := identityFromContext(c)
	result, err := h.service.Checkout(c.Request.Context(), identity, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetOrder returns one of the signed-in customer's orders.
//
// GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// ListOrders returns the signed-in customer's order history.
//
// GET /v1/orders?status=shipped&page=1&limit=20
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter := &model.ListOrdersFilter{Status: c.Query("status"), Page: page, Limit: limit}

	orders, total, err := h.service.ListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		response.InternalServerError(c, "failed to list orders")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page: filter.Page, Limit: filter.Limit, Total: total,
	})
}

// TrackOrder is the guest lookup by confirmation number and email.
//
// POST /v1/orders/track
func (h *OrderHandler) TrackOrder(c *gin.Context) {
	var req model.TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeOrderNotFound, "validation failed", err)
		return
	}

	order, err := h.service.TrackOrder(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// CancelOrder cancels one of the signed-in customer's orders.
//
// POST /v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	result, err := h.service.CancelByCustomer(c.Request.Context(), userID, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CancelGuestOrder cancels a guest order through the track-order flow.
//
// POST /v1/orders/track/cancel
func (h *OrderHandler) CancelGuestOrder(c *gin.Context) {
	var req model.GuestCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeGuestMismatch, "validation failed", err)
		return
	}

	result, err := h.service.CancelByGuest(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// -------------------------------------------------------------------
// HELPERS
// -------------------------------------------------------------------

func identityFromContext(c *gin.Context) service.CheckoutIdentity {
	identity := service.CheckoutIdentity{}
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uuid.UUID); ok {
			identity.UserID = &id
			return identity
		}
	}
	if sessionID := c.GetString("sessionID"); sessionID != "" {
		identity.SessionID = &sessionID
	}
	return identity
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	var orderErr *model.OrderError
	if errors.As(err, &orderErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, orderErr.Code, orderErr.Message)
		return
	}
	var couponErr *couponModel.CouponError
	if errors.As(err, &couponErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, couponErr.Code, couponErr.Message)
		return
	}
	var transitionErr *model.TransitionError
	if errors.As(err, &transitionErr) {
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeInvalidTransition, transitionErr.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found")
	case errors.Is(err, model.ErrNotCancellable):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeNotCancellable, err.Error())
	case errors.Is(err, model.ErrNotYourOrder), errors.Is(err, model.ErrGuestOrderViaAccount):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeNotOwner, err.Error())
	case errors.Is(err, model.ErrGuestOrderMismatch):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeGuestMismatch, err.Error())
	case errors.Is(err, model.ErrOrderConflict):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeOrderConflict, "order was modified, retry")
	case errors.Is(err, cartModel.ErrCartNotFound), errors.Is(err, cartModel.ErrCartEmpty):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeCheckoutFailed, "cart is empty")
	case errors.Is(err, cartModel.ErrCartExpired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeCheckoutFailed, "cart has expired")
	case errors.Is(err, cartModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeCheckoutFailed, err.Error())
	default:
		response.InternalServerError(c, "order operation failed")
	}
}
