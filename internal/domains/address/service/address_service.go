package service

import (
	"context"

	"github.com/google/uuid"

	"jewelstore-backend/internal/domains/address/model"
	"jewelstore-backend/internal/domains/address/repository"
)

// ServiceInterface is the address-book API. Every operation is scoped
// to the owning account.
type ServiceInterface interface {
	List(ctx context.Context, userID uuid.UUID) ([]*model.Address, error)
	Get(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error)
	Create(ctx context.Context, userID uuid.UUID, req *model.SaveAddressRequest) (*model.Address, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, req *model.SaveAddressRequest) (*model.Address, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type addressService struct {
	repo repository.AddressRepository
}

// NewAddressService wires the address domain.
func NewAddressService(repo repository.AddressRepository) ServiceInterface {
	return &addressService{repo: repo}
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]*model.Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *addressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	return s.owned(ctx, userID, addressID)
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req *model.SaveAddressRequest) (*model.Address, error) {
	address := req.ToAddress(userID)

	// The first entry becomes the default regardless of the flag.
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		address.IsDefault = true
	} else if address.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Update(ctx context.Context, userID, addressID uuid.UUID, req *model.SaveAddressRequest) (*model.Address, error) {
	address, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	address.Label = req.Label
	address.FullName = req.FullName
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country
	address.Phone = req.Phone
	address.IsDefault = req.IsDefault

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *addressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, addressID)
}

// owned loads the address and hides other accounts' entries behind
// not-found.
func (s *addressService) owned(ctx context.Context, userID, addressID uuid.UUID) (*model.Address, error) {
	address, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, model.ErrAddressNotFound
	}
	return address, nil
}
