package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ProductReview is a customer review. Reviews only come from customers
// who received the product, and stay hidden until an admin approves
// them.
type ProductReview struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	CustomerID uuid.UUID `json:"-" db:"customer_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Rating     int       `json:"rating" db:"rating"`
	Title      *string   `json:"title" db:"title"`
	Body       *string   `json:"body" db:"body"`
	IsApproved bool      `json:"is_approved" db:"is_approved"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by this customer")
	ErrNotPurchased    = errors.New("product was not delivered to this customer")
	ErrReviewNotYours  = errors.New("review belongs to another customer")
)

const (
	ErrCodeReviewNotFound  = "RVW001"
	ErrCodeAlreadyReviewed = "RVW002"
	ErrCodeNotPurchased    = "RVW003"
	ErrCodeInvalidReview   = "RVW004"
)

// CreateReviewRequest submits a review for a delivered product.
type CreateReviewRequest struct {
	ProductID string  `json:"product_id"`
	Rating    int     `json:"rating"`
	Title     *string `json:"title"`
	Body      *string `json:"body"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
			validation.By(func(interface{}) error {
				if _, err := uuid.Parse(r.ProductID); err != nil {
					return validation.NewError("validation_uuid", "product_id must be a valid uuid")
				}
				return nil
			}),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Title,
			validation.Length(0, 150).Error("title must be at most 150 characters"),
		),
		validation.Field(&r.Body,
			validation.Length(0, 2000).Error("body must be at most 2000 characters"),
		),
	)
}

// ListReviewsFilter pages through reviews. The public listing pins
// ApprovedOnly; the admin moderation queue leaves it open.
type ListReviewsFilter struct {
	ProductID    *uuid.UUID
	ApprovedOnly bool
	PendingOnly  bool
	Page         int
	Limit        int
}

func (f *ListReviewsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

// RatingSummary aggregates approved ratings for a product.
type RatingSummary struct {
	ProductID     uuid.UUID `json:"product_id"`
	ReviewCount   int       `json:"review_count"`
	AverageRating float64   `json:"average_rating"`
}
