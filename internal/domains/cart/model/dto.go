package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID,
			validation.Required.Error("product_id is required"),
		),
		validation.Field(&r.Quantity,
			validation.Required.Error("quantity is required"),
			validation.Min(1).Error("quantity must be at least 1"),
			validation.Max(MaxQuantityPerItem).Error("quantity exceeds the per-item limit"),
		),
	)
}

// UpdateItemRequest changes a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity,
			validation.Required.Error("quantity is required"),
			validation.Min(1).Error("quantity must be at least 1"),
			validation.Max(MaxQuantityPerItem).Error("quantity exceeds the per-item limit"),
		),
	)
}

// ApplyCouponRequest attaches a coupon code to the cart.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

func (r ApplyCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("coupon code is required"),
			validation.Length(3, 50).Error("coupon code must be 3-50 characters"),
		),
	)
}

// CartResponse is the full cart view returned to clients.
type CartResponse struct {
	ID             uuid.UUID          `json:"id"`
	Items          []CartItemResponse `json:"items"`
	ItemsCount     int                `json:"items_count"`
	CouponCode     *string            `json:"coupon_code,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Totals         Totals             `json:"totals"`
	ExpiresAt      time.Time          `json:"expires_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CartItemResponse is one line with live product details.
type CartItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSlug  string          `json:"product_slug"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	PriceChanged bool            `json:"price_changed"`
	InStock      bool            `json:"in_stock"`
}

// ToResponse assembles the client view from the cart and joined items.
func (c *Cart) ToResponse(details []CartItemDetail) *CartResponse {
	items := make([]CartItemResponse, 0, len(details))
	count := 0
	for i := range details {
		d := &details[i]
		count += d.Quantity
		items = append(items, CartItemResponse{
			ID:           d.ID,
			ProductID:    d.ProductID,
			ProductName:  d.ProductName,
			ProductSlug:  d.ProductSlug,
			ImageURL:     d.ImageURL,
			Quantity:     d.Quantity,
			UnitPrice:    d.UnitPrice,
			CurrentPrice: d.CurrentPrice,
			LineTotal:    d.LineTotal(),
			PriceChanged: d.HasPriceChanged(),
			InStock:      d.IsPurchasable(),
		})
	}

	return &CartResponse{
		ID:             c.ID,
		Items:          items,
		ItemsCount:     count,
		CouponCode:     c.CouponCode,
		DiscountAmount: c.DiscountAmount,
		Totals: Totals{
			Subtotal:          c.Subtotal,
			EstimatedTax:      c.EstimatedTax,
			EstimatedShipping: c.EstimatedShipping,
			EstimatedTotal:    c.EstimatedTotal,
		},
		ExpiresAt: c.ExpiresAt,
		UpdatedAt: c.UpdatedAt,
	}
}
