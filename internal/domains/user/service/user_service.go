package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jewelstore-backend/internal/domains/user/model"
	"jewelstore-backend/internal/domains/user/repository"
	"jewelstore-backend/pkg/jwt"
	"jewelstore-backend/pkg/logger"
)

type userService struct {
	repo  repository.UserRepository
	jwt   *jwt.Manager
	carts CartMerger
}

// NewUserService wires the user domain.
func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager, carts CartMerger) ServiceInterface {
	return &userService{repo: repo, jwt: jwtManager, carts: carts}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Normalize()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("account registered", map[string]interface{}{
		"user_id": user.ID,
	})
	return s.issueTokens(user)
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest, sessionID string) (*model.AuthResponse, error) {
	req.Normalize()

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Burn a comparison so a missing account costs the same as
			// a wrong password.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGZLKQuVQqyZGLJqXqFjTfPKSO2rK1qG"), []byte(req.Password))
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, model.ErrAccountDisabled
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Error("failed to record login time", err)
	}

	// A failed merge never blocks the login; the guest cart simply
	// expires on its own.
	if sessionID != "" {
		if err := s.carts.MergeGuestCart(ctx, sessionID, user.ID); err != nil {
			logger.Error("guest cart merge failed", err, map[string]interface{}{
				"user_id": user.ID,
			})
		}
	}

	return s.issueTokens(user)
}

func (s *userService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, model.ErrAccountDisabled
	}

	return s.issueTokens(user)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the password after re-verifying the current
// one. Existing refresh tokens stay valid until they expire.
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *model.ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	logger.Info("password changed", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *userService) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.FullName, nil
}

func (s *userService) issueTokens(user *model.User) (*model.AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
