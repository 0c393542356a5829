package service

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/user/model"
)

// CartMerger folds a guest cart into the account cart on sign-in. The
// cart domain implements it.
type CartMerger interface {
	MergeGuestCart(ctx context.Context, sessionID string, userID uuid.UUID) error
}

// ServiceInterface is the user domain API.
type ServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and, when sessionID is non-empty,
	// merges the guest cart into the account cart.
	Login(ctx context.Context, req *model.LoginRequest, sessionID string) (*model.AuthResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error

	// DisplayName backs published review bylines.
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}
