package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"shopmesh/internal/client"
	"shopmesh/internal/domain"
	"shopmesh/internal/repository"

	"go.uber.org/zap"
)

type mockOrderItemRepository struct {
	items   map[domain.OrderItemID]*domain.OrderItem
	order   []domain.OrderItemID
	failAll bool
}

func newMockOrderItemRepository() *mockOrderItemRepository {
	return &mockOrderItemRepository{
		items: make(map[domain.OrderItemID]*domain.OrderItem),
	}
}

func (m *mockOrderItemRepository) FindAll(ctx context.Context) ([]*domain.OrderItem, error) {
	if m.failAll {
		return nil, errors.New("connection refused")
	}
	out := make([]*domain.OrderItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *mockOrderItemRepository) FindByID(ctx context.Context, id domain.OrderItemID) (*domain.OrderItem, error) {
	if m.failAll {
		return nil, errors.New("connection refused")
	}
	item, exists := m.items[id]
	if !exists {
		return nil, repository.ErrOrderItemNotFound
	}
	return item, nil
}

func (m *mockOrderItemRepository) Save(ctx context.Context, item *domain.OrderItem) error {
	id := item.ID()
	if _, exists := m.items[id]; !exists {
		m.order = append(m.order, id)
	}
	m.items[id] = item
	return nil
}

func (m *mockOrderItemRepository) DeleteByID(ctx context.Context, id domain.OrderItemID) error {
	if _, exists := m.items[id]; !exists {
		return repository.ErrOrderItemNotFound
	}
	delete(m.items, id)
	return nil
}

type stubOrderFetcher struct {
	orders map[int]*client.OrderDetail
	fail   bool
	calls  atomic.Int64
}

func (s *stubOrderFetcher) FetchOrder(ctx context.Context, id int) (*client.OrderDetail, error) {
	s.calls.Add(1)
	if s.fail {
		return nil, client.ErrRemoteLookup
	}
	detail, exists := s.orders[id]
	if !exists {
		return nil, client.ErrRemoteLookup
	}
	return detail, nil
}

func knownOrders() map[int]*client.OrderDetail {
	return map[int]*client.OrderDetail{
		5: {OrderID: 5, OrderDesc: "first order", OrderFee: 12.50,
			OrderDate: time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)},
	}
}

func TestOrderItemFindByIDEnrichesBothFields(t *testing.T) {
	repo := newMockOrderItemRepository()
	ctx := context.Background()
	repo.Save(ctx, &domain.OrderItem{ProductID: 10, OrderID: 5, OrderedQuantity: 2})

	products := &stubProductFetcher{products: knownProducts()}
	orders := &stubOrderFetcher{orders: knownOrders()}

	svc := NewOrderItemService(repo, products, orders, staticFeatures{true}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(ctx, domain.OrderItemID{ProductID: 10, OrderID: 5})
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if view.OrderedQuantity != 2 {
		t.Errorf("expected ordered quantity 2, got %d", view.OrderedQuantity)
	}
	if view.Product == nil || view.Product.Title != "Laptop" {
		t.Errorf("expected product detail, got %+v", view.Product)
	}
	if view.Order == nil || view.Order.OrderDesc != "first order" {
		t.Errorf("expected order detail, got %+v", view.Order)
	}
}

// The product and order lookups of one item are independent.
func TestOrderItemIsolatesFieldFailures(t *testing.T) {
	repo := newMockOrderItemRepository()
	ctx := context.Background()
	repo.Save(ctx, &domain.OrderItem{ProductID: 10, OrderID: 5, OrderedQuantity: 2})

	products := &stubProductFetcher{products: knownProducts()}
	orders := &stubOrderFetcher{fail: true}

	svc := NewOrderItemService(repo, products, orders, staticFeatures{true}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(ctx, domain.OrderItemID{ProductID: 10, OrderID: 5})
	if err != nil {
		t.Fatalf("remote failure must not surface as error, got: %v", err)
	}
	if view.Product == nil || view.Product.Title != "Laptop" {
		t.Errorf("product lookup should have survived the order failure, got %+v", view.Product)
	}
	if view.Order != nil {
		t.Errorf("expected nil order detail after failed lookup, got %+v", view.Order)
	}
}

func TestOrderItemFindAllDegradesToEmptyListOnLocalFailure(t *testing.T) {
	repo := newMockOrderItemRepository()
	repo.failAll = true

	svc := NewOrderItemService(repo, &stubProductFetcher{}, &stubOrderFetcher{}, staticFeatures{true}, testExecutor(), zap.NewNop())

	views, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("expected degraded empty list, got error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected non-nil empty slice, got %v", views)
	}
}

func TestOrderItemToggleOffUsesPlaceholders(t *testing.T) {
	repo := newMockOrderItemRepository()
	ctx := context.Background()
	repo.Save(ctx, &domain.OrderItem{ProductID: 10, OrderID: 5, OrderedQuantity: 2})

	products := &stubProductFetcher{products: knownProducts()}
	orders := &stubOrderFetcher{orders: knownOrders()}

	svc := NewOrderItemService(repo, products, orders, staticFeatures{false}, testExecutor(), zap.NewNop())

	view, err := svc.FindByID(ctx, domain.OrderItemID{ProductID: 10, OrderID: 5})
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if products.calls.Load() != 0 || orders.calls.Load() != 0 {
		t.Errorf("expected zero remote calls with the toggle off, got %d product and %d order calls",
			products.calls.Load(), orders.calls.Load())
	}
	if view.Product == nil || view.Product.ProductID != 10 || view.Product.Title != "" {
		t.Errorf("expected identifier-only product placeholder, got %+v", view.Product)
	}
	if view.Order == nil || view.Order.OrderID != 5 || view.Order.OrderDesc != "" {
		t.Errorf("expected identifier-only order placeholder, got %+v", view.Order)
	}
}

func TestOrderItemMissingRowIsAnError(t *testing.T) {
	repo := newMockOrderItemRepository()

	svc := NewOrderItemService(repo, &stubProductFetcher{}, &stubOrderFetcher{}, staticFeatures{true}, testExecutor(), zap.NewNop())

	_, err := svc.FindByID(context.Background(), domain.OrderItemID{ProductID: 1, OrderID: 1})
	if err != repository.ErrOrderItemNotFound {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}
}
