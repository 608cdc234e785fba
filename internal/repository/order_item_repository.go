package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrOrderItemNotFound = errors.New("order item not found")
)

// OrderItemRepository defines the interface for order item data access.
// Order items are keyed by the composite (productId, orderId) value key.
type OrderItemRepository interface {
	FindAll(ctx context.Context) ([]*domain.OrderItem, error)
	FindByID(ctx context.Context, id domain.OrderItemID) (*domain.OrderItem, error)
	Save(ctx context.Context, item *domain.OrderItem) error
	DeleteByID(ctx context.Context, id domain.OrderItemID) error
}

type orderItemRepository struct {
	db *sql.DB
}

// NewOrderItemRepository creates a new instance of OrderItemRepository
func NewOrderItemRepository(db *sql.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) FindAll(ctx context.Context) ([]*domain.OrderItem, error) {
	query := `
		SELECT product_id, order_id, ordered_quantity
		FROM order_items
		ORDER BY order_id, product_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []*domain.OrderItem{}
	for rows.Next() {
		item := &domain.OrderItem{}
		if err := rows.Scan(&item.ProductID, &item.OrderID, &item.OrderedQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *orderItemRepository) FindByID(ctx context.Context, id domain.OrderItemID) (*domain.OrderItem, error) {
	query := `
		SELECT product_id, order_id, ordered_quantity
		FROM order_items
		WHERE product_id = $1 AND order_id = $2
	`

	item := &domain.OrderItem{}
	err := r.db.QueryRowContext(ctx, query, id.ProductID, id.OrderID).
		Scan(&item.ProductID, &item.OrderID, &item.OrderedQuantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to find order item by ID: %w", err)
	}

	return item, nil
}

// Save upserts the order item on its composite key, updating the
// ordered quantity if the row already exists.
func (r *orderItemRepository) Save(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (product_id, order_id, ordered_quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, order_id) DO UPDATE SET ordered_quantity = EXCLUDED.ordered_quantity
	`

	if _, err := r.db.ExecContext(ctx, query, item.ProductID, item.OrderID, item.OrderedQuantity); err != nil {
		return fmt.Errorf("failed to save order item: %w", err)
	}

	return nil
}

func (r *orderItemRepository) DeleteByID(ctx context.Context, id domain.OrderItemID) error {
	query := `DELETE FROM order_items WHERE product_id = $1 AND order_id = $2`

	result, err := r.db.ExecContext(ctx, query, id.ProductID, id.OrderID)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderItemNotFound
	}

	return nil
}
