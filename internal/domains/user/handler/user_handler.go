package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/user/model"
	"jewelstore-backend/internal/domains/user/service"
	"jewelstore-backend/internal/shared/response"
)

// UserHandler serves authentication and profile endpoints.
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{service: userService}
}

// Register creates a customer account and signs it in.
//
// POST /v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidUser, "validation failed", err)
		return
	}

	auth, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login verifies credentials. The guest session cart, if any, is
// merged into the account cart.
//
// POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidUser, "validation failed", err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), &req, c.GetString("sessionID"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh exchanges a refresh token for a new token pair.
//
// POST /v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidUser, "validation failed", err)
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// GetProfile returns the signed-in user's profile.
//
// GET /v1/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateProfile patches the signed-in user's profile.
//
// PATCH /v1/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidUser, "validation failed", err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ChangePassword rotates the signed-in user's password.
//
// PUT /v1/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "sign in required")
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidUser, "validation failed", err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"changed": true})
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeEmailTaken, "email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, model.ErrCodeInvalidCredentials, "invalid email or password")
	case errors.Is(err, model.ErrAccountDisabled):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeAccountDisabled, "account is disabled")
	case errors.Is(err, model.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUserNotFound, "user not found")
	default:
		response.InternalServerError(c, "account operation failed")
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
