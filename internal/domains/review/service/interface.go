package service

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/review/model"
)

// PurchaseChecker answers whether a customer received a product. The
// order domain implements it.
type PurchaseChecker interface {
	HasDeliveredOrderItem(ctx context.Context, customerID, productID uuid.UUID) (bool, error)
}

// RatingWriter receives the recomputed review aggregate whenever the
// approved set changes. The product repository implements it.
type RatingWriter interface {
	SetRatingSummary(ctx context.Context, productID uuid.UUID, average float64, count int) error
}

// ServiceInterface is the review domain API.
type ServiceInterface interface {
	// Customer
	Create(ctx context.Context, customerID uuid.UUID, authorName string, req *model.CreateReviewRequest) (*model.ProductReview, error)
	Delete(ctx context.Context, customerID, reviewID uuid.UUID) error

	// Public
	ListForProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]*model.ProductReview, int, error)
	Summary(ctx context.Context, productID uuid.UUID) (*model.RatingSummary, error)

	// Admin moderation
	ListPending(ctx context.Context, page, limit int) ([]*model.ProductReview, int, error)
	Moderate(ctx context.Context, reviewID uuid.UUID, approve bool) error
	AdminDelete(ctx context.Context, reviewID uuid.UUID) error
}
