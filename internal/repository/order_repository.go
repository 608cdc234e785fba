package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	FindAll(ctx context.Context) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	DeleteByID(ctx context.Context, id int) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT order_id, order_date, order_desc, order_fee, cart_id
		FROM orders
		ORDER BY order_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		o := &domain.Order{}
		if err := rows.Scan(&o.OrderID, &o.OrderDate, &o.OrderDesc, &o.OrderFee, &o.CartID); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
		SELECT order_id, order_date, order_desc, order_fee, cart_id
		FROM orders
		WHERE order_id = $1
	`

	o := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.OrderID, &o.OrderDate, &o.OrderDesc, &o.OrderFee, &o.CartID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (order_date, order_desc, order_fee, cart_id)
		VALUES ($1, $2, $3, $4)
		RETURNING order_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		order.OrderDate,
		order.OrderDesc,
		order.OrderFee,
		order.CartID,
	).Scan(&order.OrderID)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET order_date = $2, order_desc = $3, order_fee = $4, cart_id = $5
		WHERE order_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, order.OrderID, order.OrderDate, order.OrderDesc, order.OrderFee, order.CartID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
