package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindAll(ctx context.Context) ([]*domain.Payment, error)
	FindByID(ctx context.Context, id int) (*domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) error
	Update(ctx context.Context, payment *domain.Payment) error
	DeleteByID(ctx context.Context, id int) error
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	query := `
		SELECT payment_id, order_id, is_payed, payment_status
		FROM payments
		ORDER BY payment_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		p := &domain.Payment{}
		if err := rows.Scan(&p.PaymentID, &p.OrderID, &p.IsPayed, &p.PaymentStatus); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	query := `
		SELECT payment_id, order_id, is_payed, payment_status
		FROM payments
		WHERE payment_id = $1
	`

	p := &domain.Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.PaymentID, &p.OrderID, &p.IsPayed, &p.PaymentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID: %w", err)
	}

	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (order_id, is_payed, payment_status)
		VALUES ($1, $2, $3)
		RETURNING payment_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		payment.OrderID,
		payment.IsPayed,
		payment.PaymentStatus,
	).Scan(&payment.PaymentID)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET order_id = $2, is_payed = $3, payment_status = $4
		WHERE payment_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, payment.PaymentID, payment.OrderID, payment.IsPayed, payment.PaymentStatus)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *paymentRepository) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
