package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a catalog item.
type CreateProductRequest struct {
	Name           string   `json:"name"`
	Description    *string  `json:"description"`
	Category       string   `json:"category"`
	Metal          string   `json:"metal"`
	Purity         *string  `json:"purity"`
	Gemstone       *string  `json:"gemstone"`
	WeightGrams    *float64 `json:"weight_grams"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	StockCount     int      `json:"stock_count"`
	IsActive       bool     `json:"is_active"`
	IsFeatured     bool     `json:"is_featured"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(3, 200).Error("name must be 3-200 characters"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.By(func(interface{}) error {
				if !Category(r.Category).IsValid() {
					return validation.NewError("validation_category", "unknown product category")
				}
				return nil
			}),
		),
		validation.Field(&r.Metal,
			validation.Required.Error("metal is required"),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
			validation.Min(0.01).Error("price must be > 0"),
		),
		validation.Field(&r.StockCount,
			validation.Min(0).Error("stock must be >= 0"),
		),
	)
}

// ToProduct builds the entity. The slug is derived by the service so
// collisions can be resolved against the store.
func (r *CreateProductRequest) ToProduct() *Product {
	p := &Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    Category(r.Category),
		Metal:       r.Metal,
		Purity:      r.Purity,
		Gemstone:    r.Gemstone,
		Price:       decimal.NewFromFloat(r.Price),
		StockCount:  r.StockCount,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
	}
	if r.WeightGrams != nil {
		w := decimal.NewFromFloat(*r.WeightGrams)
		p.WeightGrams = &w
	}
	if r.CompareAtPrice != nil {
		cp := decimal.NewFromFloat(*r.CompareAtPrice)
		p.CompareAtPrice = &cp
	}
	return p
}

// UpdateProductRequest patches mutable fields. Nil means unchanged.
type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Category       *string  `json:"category"`
	Metal          *string  `json:"metal"`
	Purity         *string  `json:"purity"`
	Gemstone       *string  `json:"gemstone"`
	WeightGrams    *float64 `json:"weight_grams"`
	Price          *float64 `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	StockCount     *int     `json:"stock_count"`
	IsActive       *bool    `json:"is_active"`
	IsFeatured     *bool    `json:"is_featured"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.When(r.Category != nil,
				validation.By(func(interface{}) error {
					if !Category(*r.Category).IsValid() {
						return validation.NewError("validation_category", "unknown product category")
					}
					return nil
				}),
			),
		),
		validation.Field(&r.Price,
			validation.When(r.Price != nil,
				validation.By(func(interface{}) error {
					if *r.Price <= 0 {
						return validation.NewError("validation_price", "price must be > 0")
					}
					return nil
				}),
			),
		),
	)
}

// ListProductsFilter drives catalog browsing and admin listings.
type ListProductsFilter struct {
	Category        string
	Metal           string
	Search          string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	FeaturedOnly    bool
	IncludeInactive bool   // admin only
	Sort            string // newest, price_asc, price_desc
	Page            int
	Limit           int
}

func (f *ListProductsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 24
	}
	switch f.Sort {
	case "newest", "price_asc", "price_desc":
	default:
		f.Sort = "newest"
	}
}

// ImportSummary reports a bulk spreadsheet import.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
