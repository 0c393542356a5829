package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category buckets the catalog for browsing.
type Category string

const (
	CategoryRings     Category = "rings"
	CategoryNecklaces Category = "necklaces"
	CategoryEarrings  Category = "earrings"
	CategoryBracelets Category = "bracelets"
	CategoryBangles   Category = "bangles"
	CategoryPendants  Category = "pendants"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryRings, CategoryNecklaces, CategoryEarrings, CategoryBracelets, CategoryBangles, CategoryPendants:
		return true
	}
	return false
}

// Product is one catalog item.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	Category    Category  `json:"category" db:"category"`

	// Material details shown on the product page.
	Metal       string           `json:"metal" db:"metal"`
	Purity      *string          `json:"purity,omitempty" db:"purity"` // e.g. "22K", "925"
	Gemstone    *string          `json:"gemstone,omitempty" db:"gemstone"`
	WeightGrams *decimal.Decimal `json:"weight_grams,omitempty" db:"weight_grams"`

	Price          decimal.Decimal  `json:"price" db:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty" db:"compare_at_price"`
	StockCount     int              `json:"stock_count" db:"stock_count"`

	PrimaryImageURL *string `json:"primary_image_url,omitempty" db:"primary_image_url"`

	IsActive   bool `json:"is_active" db:"is_active"`
	IsFeatured bool `json:"is_featured" db:"is_featured"`

	// Maintained by review moderation; listings read these without
	// joining product_reviews.
	RatingAverage float64 `json:"rating_average" db:"rating_average"`
	ReviewCount   int     `json:"review_count" db:"review_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProductImage is one stored variant set for a product.
type ProductImage struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	ObjectKey    string    `json:"-" db:"object_key"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	MediumURL    string    `json:"medium_url" db:"medium_url"`
	LargeURL     string    `json:"large_url" db:"large_url"`
	Position     int       `json:"position" db:"position"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (p *Product) InStock() bool {
	return p.StockCount > 0
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSlugTaken       = errors.New("product slug already exists")
	ErrOutOfStock      = errors.New("not enough stock")
	ErrInvalidCategory = errors.New("unknown product category")
	ErrImageNotFound   = errors.New("product image not found")
)

const (
	ErrCodeProductNotFound = "PRD001"
	ErrCodeSlugTaken       = "PRD002"
	ErrCodeOutOfStock      = "PRD003"
	ErrCodeInvalidProduct  = "PRD004"
	ErrCodeImportFailed    = "PRD005"
)
