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

// OrderItemView is the outward representation of an order item,
// hydrated with product and order details.
type OrderItemView struct {
	ProductID       int                   `json:"productId"`
	OrderID         int                   `json:"orderId"`
	OrderedQuantity int                   `json:"orderedQuantity"`
	Product         *client.ProductDetail `json:"product"`
	Order           *client.OrderDetail   `json:"order"`
}

// OrderItemService defines the interface for order item business logic
type OrderItemService interface {
	FindAll(ctx context.Context) ([]OrderItemView, error)
	FindByID(ctx context.Context, id domain.OrderItemID) (*OrderItemView, error)
	Save(ctx context.Context, item *domain.OrderItem) error
	DeleteByID(ctx context.Context, id domain.OrderItemID) error
}

type orderItemService struct {
	orderItemRepo repository.OrderItemRepository
	products      client.ProductFetcher
	orders        client.OrderFetcher
	features      config.Features
	executor      *resilience.Executor
	logger        *zap.Logger
}

// NewOrderItemService creates a new instance of OrderItemService
func NewOrderItemService(
	orderItemRepo repository.OrderItemRepository,
	products client.ProductFetcher,
	orders client.OrderFetcher,
	features config.Features,
	executor *resilience.Executor,
	logger *zap.Logger,
) OrderItemService {
	return &orderItemService{
		orderItemRepo: orderItemRepo,
		products:      products,
		orders:        orders,
		features:      features,
		executor:      executor,
		logger:        logger,
	}
}

func (s *orderItemService) FindAll(ctx context.Context) ([]OrderItemView, error) {
	items, err := s.orderItemRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to load order items, degrading to empty list", zap.Error(err))
		return []OrderItemView{}, nil
	}

	views := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		views = append(views, s.enrich(ctx, item))
	}
	return views, nil
}

func (s *orderItemService) FindByID(ctx context.Context, id domain.OrderItemID) (*OrderItemView, error) {
	item, err := s.orderItemRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrOrderItemNotFound {
			return nil, repository.ErrOrderItemNotFound
		}
		s.logger.Error("failed to load order item, returning degraded view", zap.Error(err))
		return &OrderItemView{ProductID: id.ProductID, OrderID: id.OrderID}, nil
	}

	view := s.enrich(ctx, item)
	return &view, nil
}

func (s *orderItemService) Save(ctx context.Context, item *domain.OrderItem) error {
	if err := s.orderItemRepo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save order item: %w", err)
	}
	return nil
}

func (s *orderItemService) DeleteByID(ctx context.Context, id domain.OrderItemID) error {
	return s.orderItemRepo.DeleteByID(ctx, id)
}

// enrich hydrates one row. Product and order lookups are independent;
// either may fail without invalidating the other.
func (s *orderItemService) enrich(ctx context.Context, item *domain.OrderItem) OrderItemView {
	view := OrderItemView{
		ProductID:       item.ProductID,
		OrderID:         item.OrderID,
		OrderedQuantity: item.OrderedQuantity,
	}

	if !s.features.FetchDetailsEnabled() {
		view.Product = &client.ProductDetail{ProductID: item.ProductID}
		view.Order = &client.OrderDetail{OrderID: item.OrderID}
		return view
	}

	if err := s.executor.Do(ctx, "product-service", func(ctx context.Context) error {
		detail, err := s.products.FetchProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		view.Product = detail
		return nil
	}); err != nil {
		s.logger.Warn("product detail lookup degraded",
			zap.Int("productId", item.ProductID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	if err := s.executor.Do(ctx, "order-service", func(ctx context.Context) error {
		detail, err := s.orders.FetchOrder(ctx, item.OrderID)
		if err != nil {
			return err
		}
		view.Order = detail
		return nil
	}); err != nil {
		s.logger.Warn("order detail lookup degraded",
			zap.Int("orderId", item.OrderID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	return view
}
