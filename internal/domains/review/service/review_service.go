package service

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/review/model"
	"jewelstore-backend/internal/domains/review/repository"
	"jewelstore-backend/pkg/logger"
)

type reviewService struct {
	repo      repository.ReviewRepository
	purchases PurchaseChecker
	catalog   RatingWriter
}

// NewReviewService wires the review domain.
func NewReviewService(repo repository.ReviewRepository, purchases PurchaseChecker, catalog RatingWriter) ServiceInterface {
	return &reviewService{repo: repo, purchases: purchases, catalog: catalog}
}

// Create submits a review. The customer must have a delivered order
// containing the product, and may review each product once. New
// reviews start unapproved.
func (s *reviewService) Create(ctx context.Context, customerID uuid.UUID, authorName string, req *model.CreateReviewRequest) (*model.ProductReview, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, model.ErrReviewNotFound
	}

	purchased, err := s.purchases.HasDeliveredOrderItem(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, model.ErrNotPurchased
	}

	exists, err := s.repo.Exists(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAlreadyReviewed
	}

	review := &model.ProductReview{
		ID:         uuid.New(),
		ProductID:  productID,
		CustomerID: customerID,
		AuthorName: authorName,
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
		IsApproved: false,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("review submitted", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": productID,
		"rating":     review.Rating,
	})
	return review, nil
}

// Delete lets a customer retract their own review.
func (s *reviewService) Delete(ctx context.Context, customerID, reviewID uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.CustomerID != customerID {
		return model.ErrReviewNotYours
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if review.IsApproved {
		s.refreshRating(ctx, review.ProductID)
	}
	return nil
}

func (s *reviewService) ListForProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]*model.ProductReview, int, error) {
	filter := &model.ListReviewsFilter{
		ProductID:    &productID,
		ApprovedOnly: true,
		Page:         page,
		Limit:        limit,
	}
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *reviewService) Summary(ctx context.Context, productID uuid.UUID) (*model.RatingSummary, error) {
	return s.repo.RatingSummary(ctx, productID)
}

func (s *reviewService) ListPending(ctx context.Context, page, limit int) ([]*model.ProductReview, int, error) {
	filter := &model.ListReviewsFilter{
		PendingOnly: true,
		Page:        page,
		Limit:       limit,
	}
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

func (s *reviewService) Moderate(ctx context.Context, reviewID uuid.UUID, approve bool) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.repo.SetApproved(ctx, reviewID, approve); err != nil {
		return err
	}

	s.refreshRating(ctx, review.ProductID)

	logger.Info("review moderated", map[string]interface{}{
		"review_id": reviewID,
		"approved":  approve,
	})
	return nil
}

func (s *reviewService) AdminDelete(ctx context.Context, reviewID uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	if review.IsApproved {
		s.refreshRating(ctx, review.ProductID)
	}
	return nil
}

// refreshRating pushes the recomputed aggregate onto the product row.
// The aggregate is derived data, so failures are logged and swallowed.
func (s *reviewService) refreshRating(ctx context.Context, productID uuid.UUID) {
	summary, err := s.repo.RatingSummary(ctx, productID)
	if err != nil {
		logger.Error("failed to recompute rating summary", err, map[string]interface{}{
			"product_id": productID,
		})
		return
	}
	if err := s.catalog.SetRatingSummary(ctx, productID, summary.AverageRating, summary.ReviewCount); err != nil {
		logger.Error("failed to store rating summary", err, map[string]interface{}{
			"product_id": productID,
		})
	}
}
