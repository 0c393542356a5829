package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/cart/model"
	"jewelstore-backend/internal/domains/cart/service"
	couponModel "jewelstore-backend/internal/domains/coupon/model"
	"jewelstore-backend/internal/shared/response"
)

// CartHandler serves both signed-in and guest carts. Guest identity
// comes from the session middleware; signed-in identity from the
// optional auth middleware.
type CartHandler struct {
	service service.ServiceInterface
}

func NewCartHandler(cartService service.ServiceInterface) *CartHandler {
	return &CartHandler{service: cartService}
}

// GetCart returns the caller's cart, creating an empty one if needed.
//
// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// AddItem adds a product to the cart.
//
// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "CART_001", "validation failed", err)
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), ownerFromContext(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// UpdateItem changes a line's quantity.
//
// PATCH /v1/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "CART_001", "validation failed", err)
		return
	}

	cart, err := h.service.UpdateItem(c.Request.Context(), ownerFromContext(c), itemID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// RemoveItem deletes a line from the cart.
//
// DELETE /v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), ownerFromContext(c), itemID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ApplyCoupon attaches a coupon code to the cart.
//
// POST /v1/cart/coupon
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req model.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "CART_001", "validation failed", err)
		return
	}

	cart, err := h.service.ApplyCoupon(c.Request.Context(), ownerFromContext(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// RemoveCoupon detaches the coupon from the cart.
//
// DELETE /v1/cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	cart, err := h.service.RemoveCoupon(c.Request.Context(), ownerFromContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ClearCart empties the cart.
//
// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), ownerFromContext(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

// ownerFromContext prefers the signed-in user; falls back to the guest
// session set by the session middleware.
func ownerFromContext(c *gin.Context) service.Owner {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(uuid.UUID); ok {
			return service.Owner{UserID: &id}
		}
	}
	sessionID := c.GetString("sessionID")
	if sessionID != "" {
		return service.Owner{SessionID: &sessionID}
	}
	return service.Owner{}
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	var couponErr *couponModel.CouponError
	if errors.As(err, &couponErr) {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, couponErr.Code, couponErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrCartNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "CART_002", "cart not found")
	case errors.Is(err, model.ErrCartItemNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "CART_003", "cart item not found")
	case errors.Is(err, model.ErrCartEmpty):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "CART_004", "cart is empty")
	case errors.Is(err, model.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "CART_005", "insufficient stock")
	case errors.Is(err, model.ErrProductNotActive):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "CART_006", "product is not available")
	case errors.Is(err, model.ErrInvalidQuantity), errors.Is(err, model.ErrQuantityTooHigh):
		response.ErrorResponse(c, http.StatusBadRequest, "CART_001", err.Error())
	case errors.Is(err, couponModel.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, couponModel.ErrCodeCouponNotFound, "coupon not found")
	default:
		response.InternalServerError(c, "cart operation failed")
	}
}
