package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Address is a saved address-book entry. Checkout copies the chosen
// entry into an immutable snapshot on the order, so editing or
// deleting an address never touches past orders.
type Address struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"-" db:"user_id"`
	Label      string    `json:"label" db:"label"`
	FullName   string    `json:"full_name" db:"full_name"`
	Line1      string    `json:"line1" db:"line1"`
	Line2      *string   `json:"line2" db:"line2"`
	City       string    `json:"city" db:"city"`
	State      string    `json:"state" db:"state"`
	PostalCode string    `json:"postal_code" db:"postal_code"`
	Country    string    `json:"country" db:"country"`
	Phone      string    `json:"phone" db:"phone"`
	IsDefault  bool      `json:"is_default" db:"is_default"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressNotYours = errors.New("address belongs to another account")
)

const (
	ErrCodeAddressNotFound = "ADR001"
	ErrCodeInvalidAddress  = "ADR002"
)

// SaveAddressRequest creates or replaces an address-book entry.
type SaveAddressRequest struct {
	Label      string  `json:"label"`
	FullName   string  `json:"full_name"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Phone      string  `json:"phone"`
	IsDefault  bool    `json:"is_default"`
}

func (r SaveAddressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required.Error("label is required"), validation.Length(1, 50)),
		validation.Field(&r.FullName, validation.Required.Error("full name is required"), validation.Length(2, 100)),
		validation.Field(&r.Line1, validation.Required.Error("address line is required"), validation.Length(3, 200)),
		validation.Field(&r.City, validation.Required.Error("city is required")),
		validation.Field(&r.State, validation.Required.Error("state is required")),
		validation.Field(&r.PostalCode, validation.Required.Error("postal code is required")),
		validation.Field(&r.Country, validation.Required.Error("country is required")),
		validation.Field(&r.Phone, validation.Required.Error("phone is required")),
	)
}

// ToAddress builds the entity for userID.
func (r *SaveAddressRequest) ToAddress(userID uuid.UUID) *Address {
	return &Address{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      r.Label,
		FullName:   r.FullName,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Phone:      r.Phone,
		IsDefault:  r.IsDefault,
	}
}
