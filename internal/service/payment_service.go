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

// PaymentView is the outward representation of a payment, hydrated
// with the order it pays for.
type PaymentView struct {
	PaymentID     int                  `json:"paymentId"`
	OrderID       int                  `json:"orderId"`
	IsPayed       bool                 `json:"isPayed"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Order         *client.OrderDetail  `json:"order"`
}

// PaymentService defines the interface for payment business logic
type PaymentService interface {
	FindAll(ctx context.Context) ([]PaymentView, error)
	FindByID(ctx context.Context, id int) (*PaymentView, error)
	Create(ctx context.Context, payment *domain.Payment) error
	Update(ctx context.Context, payment *domain.Payment) error
	DeleteByID(ctx context.Context, id int) error
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orders      client.OrderFetcher
	features    config.Features
	executor    *resilience.Executor
	logger      *zap.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orders client.OrderFetcher,
	features config.Features,
	executor *resilience.Executor,
	logger *zap.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orders:      orders,
		features:    features,
		executor:    executor,
		logger:      logger,
	}
}

func (s *paymentService) FindAll(ctx context.Context) ([]PaymentView, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to load payments, degrading to empty list", zap.Error(err))
		return []PaymentView{}, nil
	}

	views := make([]PaymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, s.enrich(ctx, p))
	}
	return views, nil
}

func (s *paymentService) FindByID(ctx context.Context, id int) (*PaymentView, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return nil, repository.ErrPaymentNotFound
		}
		s.logger.Error("failed to load payment, returning degraded view", zap.Error(err))
		return &PaymentView{PaymentID: id}, nil
	}

	view := s.enrich(ctx, payment)
	return &view, nil
}

func (s *paymentService) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.PaymentStatus == "" {
		payment.PaymentStatus = domain.PaymentNotStarted
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (s *paymentService) Update(ctx context.Context, payment *domain.Payment) error {
	return s.paymentRepo.Update(ctx, payment)
}

func (s *paymentService) DeleteByID(ctx context.Context, id int) error {
	return s.paymentRepo.DeleteByID(ctx, id)
}

func (s *paymentService) enrich(ctx context.Context, p *domain.Payment) PaymentView {
	view := PaymentView{
		PaymentID:     p.PaymentID,
		OrderID:       p.OrderID,
		IsPayed:       p.IsPayed,
		PaymentStatus: p.PaymentStatus,
	}

	if !s.features.FetchDetailsEnabled() {
		view.Order = &client.OrderDetail{OrderID: p.OrderID}
		return view
	}

	if err := s.executor.Do(ctx, "order-service", func(ctx context.Context) error {
		detail, err := s.orders.FetchOrder(ctx, p.OrderID)
		if err != nil {
			return err
		}
		view.Order = detail
		return nil
	}); err != nil {
		s.logger.Warn("order detail lookup degraded",
			zap.Int("orderId", p.OrderID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	return view
}
