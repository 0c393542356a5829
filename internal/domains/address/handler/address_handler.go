package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/address/model"
	"jewelstore-backend/internal/domains/address/service"
	"jewelstore-backend/internal/shared/response"
)

// AddressHandler serves the signed-in customer's address book.
type AddressHandler struct {
	service service.ServiceInterface
}

func NewAddressHandler(addressService service.ServiceInterface) *AddressHandler {
	return &AddressHandler{service: addressService}
}

// ListAddresses returns the caller's address book, default first.
//
// GET /v1/addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	addresses, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to list addresses")
		return
	}

	response.Success(c, http.StatusOK, addresses)
}

// CreateAddress adds an address-book entry.
//
// POST /v1/addresses
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	var req model.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidAddress, "validation failed", err)
		return
	}

	address, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, address)
}

// UpdateAddress replaces an entry.
//
// PUT /v1/addresses/:id
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid address id")
		return
	}

	var req model.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidAddress, "validation failed", err)
		return
	}

	address, err := h.service.Update(c.Request.Context(), userID, addressID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, address)
}

// DeleteAddress removes an entry. Past orders keep their snapshots.
//
// DELETE /v1/addresses/:id
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid address id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AddressHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrAddressNotFound) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeAddressNotFound, "address not found")
		return
	}
	response.InternalServerError(c, "address operation failed")
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
