package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository defines the interface for cart data access
type CartRepository interface {
	FindAll(ctx context.Context) ([]*domain.Cart, error)
	FindByID(ctx context.Context, id int) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	Update(ctx context.Context, cart *domain.Cart) error
	DeleteByID(ctx context.Context, id int) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindAll(ctx context.Context) ([]*domain.Cart, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT cart_id, user_id FROM carts ORDER BY cart_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	defer rows.Close()

	carts := []*domain.Cart{}
	for rows.Next() {
		c := &domain.Cart{}
		if err := rows.Scan(&c.CartID, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}
		carts = append(carts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating carts: %w", err)
	}

	return carts, nil
}

func (r *cartRepository) FindByID(ctx context.Context, id int) (*domain.Cart, error) {
	c := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, `SELECT cart_id, user_id FROM carts WHERE cart_id = $1`, id).
		Scan(&c.CartID, &c.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart by ID: %w", err)
	}

	return c, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO carts (user_id) VALUES ($1) RETURNING cart_id`, cart.UserID).
		Scan(&cart.CartID)
	if err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

func (r *cartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	result, err := r.db.ExecContext(ctx, `UPDATE carts SET user_id = $2 WHERE cart_id = $1`, cart.CartID, cart.UserID)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (r *cartRepository) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE cart_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCartNotFound
	}

	return nil
}
