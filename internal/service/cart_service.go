package service

import (
	"context"
	"fmt"

	"shopmesh/internal/client"
	"shopmesh/internal/config"
	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
	"shopmesh/internal/resilience"

	"go.uber.org/zap"
)

// CartView is the outward representation of a cart, hydrated with the
// owning user's details.
type CartView struct {
	CartID int                `json:"cartId"`
	UserID int                `json:"userId"`
	User   *client.UserDetail `json:"user"`
}

// CartService defines the interface for cart business logic
type CartService interface {
	FindAll(ctx context.Context) ([]CartView, error)
	FindByID(ctx context.Context, id int) (*CartView, error)
	Create(ctx context.Context, cart *domain.Cart) error
	Update(ctx context.Context, cart *domain.Cart) error
	DeleteByID(ctx context.Context, id int) error
}

type cartService struct {
	cartRepo repository.CartRepository
	users    client.UserFetcher
	features config.Features
	executor *resilience.Executor
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo repository.CartRepository,
	users client.UserFetcher,
	features config.Features,
	executor *resilience.Executor,
	logger *zap.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		users:    users,
		features: features,
		executor: executor,
		logger:   logger,
	}
}

func (s *cartService) FindAll(ctx context.Context) ([]CartView, error) {
	carts, err := s.cartRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to load carts, degrading to empty list", zap.Error(err))
		return []CartView{}, nil
	}

	views := make([]CartView, 0, len(carts))
	for _, c := range carts {
		views = append(views, s.enrich(ctx, c))
	}
	return views, nil
}

func (s *cartService) FindByID(ctx context.Context, id int) (*CartView, error) {
	cart, err := s.cartRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrCartNotFound {
			return nil, repository.ErrCartNotFound
		}
		s.logger.Error("failed to load cart, returning degraded view", zap.Error(err))
		return &CartView{CartID: id}, nil
	}

	view := s.enrich(ctx, cart)
	return &view, nil
}

func (s *cartService) Create(ctx context.Context, cart *domain.Cart) error {
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (s *cartService) Update(ctx context.Context, cart *domain.Cart) error {
	return s.cartRepo.Update(ctx, cart)
}

func (s *cartService) DeleteByID(ctx context.Context, id int) error {
	return s.cartRepo.DeleteByID(ctx, id)
}

func (s *cartService) enrich(ctx context.Context, c *domain.Cart) CartView {
	view := CartView{CartID: c.CartID, UserID: c.UserID}

	if !s.features.FetchDetailsEnabled() {
		view.User = &client.UserDetail{UserID: c.UserID}
		return view
	}

	if err := s.executor.Do(ctx, "user-service", func(ctx context.Context) error {
		detail, err := s.users.FetchUser(ctx, c.UserID)
		if err != nil {
			return err
		}
		view.User = detail
		return nil
	}); err != nil {
		s.logger.Warn("user detail lookup degraded",
			zap.Int("userId", c.UserID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	return view
}
