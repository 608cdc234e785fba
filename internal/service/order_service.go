package service

import (
	"context"
	"time"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
)

// OrderService defines the interface for order business logic
type OrderService interface {
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	DeleteByID(ctx context.Context, id int) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo}
}

func (s *orderService) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *orderService) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderService) Create(ctx context.Context, order *domain.Order) error {
	// The cart is local to the order service, so a dangling cart id
	// can be rejected outright rather than degraded.
	if _, err := s.cartRepo.FindByID(ctx, order.CartID); err != nil {
		return err
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	return s.orderRepo.Create(ctx, order)
}

func (s *orderService) Update(ctx context.Context, order *domain.Order) error {
	return s.orderRepo.Update(ctx, order)
}

func (s *orderService) DeleteByID(ctx context.Context, id int) error {
	return s.orderRepo.DeleteByID(ctx, id)
}
