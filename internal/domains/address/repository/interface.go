package repository

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/address/model"
)

// AddressRepository persists address-book entries.
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Address, error)

	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearDefault unsets is_default across the user's entries before a
	// new default is written.
	ClearDefault(ctx context.Context, userID uuid.UUID) error
}
