package repository

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/review/model"
)

// ReviewRepository persists product reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductReview, error)
	List(ctx context.Context, filter *model.ListReviewsFilter) ([]*model.ProductReview, int, error)
	Exists(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
	RatingSummary(ctx context.Context, productID uuid.UUID) (*model.RatingSummary, error)

	Create(ctx context.Context, review *model.ProductReview) error
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
