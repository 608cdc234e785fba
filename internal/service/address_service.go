package service

import (
	"context"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
)

// AddressService defines the interface for address business logic
type AddressService interface {
	FindAll(ctx context.Context) ([]*domain.Address, error)
	FindByID(ctx context.Context, id int) (*domain.Address, error)
	FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
	DeleteByID(ctx context.Context, id int) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService creates a new instance of AddressService
func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) FindAll(ctx context.Context) ([]*domain.Address, error) {
	return s.addressRepo.FindAll(ctx)
}

func (s *addressService) FindByID(ctx context.Context, id int) (*domain.Address, error) {
	return s.addressRepo.FindByID(ctx, id)
}

func (s *addressService) FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error) {
	return s.addressRepo.FindByUserID(ctx, userID)
}

func (s *addressService) Create(ctx context.Context, address *domain.Address) error {
	return s.addressRepo.Create(ctx, address)
}

func (s *addressService) Update(ctx context.Context, address *domain.Address) error {
	return s.addressRepo.Update(ctx, address)
}

func (s *addressService) DeleteByID(ctx context.Context, id int) error {
	return s.addressRepo.DeleteByID(ctx, id)
}
