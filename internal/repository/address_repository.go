package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrAddressNotFound = errors.New("address not found")
)

// AddressRepository defines the interface for address data access
type AddressRepository interface {
	FindAll(ctx context.Context) ([]*domain.Address, error)
	FindByID(ctx context.Context, id int) (*domain.Address, error)
	FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error)
	Create(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
	DeleteByID(ctx context.Context, id int) error
}

type addressRepository struct {
	db *sql.DB
}

// NewAddressRepository creates a new instance of AddressRepository
func NewAddressRepository(db *sql.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) FindAll(ctx context.Context) ([]*domain.Address, error) {
	return r.query(ctx, `
		SELECT address_id, user_id, full_address, postal_code, city
		FROM addresses
		ORDER BY address_id
	`)
}

func (r *addressRepository) FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error) {
	return r.query(ctx, `
		SELECT address_id, user_id, full_address, postal_code, city
		FROM addresses
		WHERE user_id = $1
		ORDER BY address_id
	`, userID)
}

func (r *addressRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*domain.Address{}
	for rows.Next() {
		a := &domain.Address{}
		if err := rows.Scan(&a.AddressID, &a.UserID, &a.FullAddress, &a.PostalCode, &a.City); err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) FindByID(ctx context.Context, id int) (*domain.Address, error) {
	query := `
		SELECT address_id, user_id, full_address, postal_code, city
		FROM addresses
		WHERE address_id = $1
	`

	a := &domain.Address{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.AddressID, &a.UserID, &a.FullAddress, &a.PostalCode, &a.City)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to find address by ID: %w", err)
	}

	return a, nil
}

func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (user_id, full_address, postal_code, city)
		VALUES ($1, $2, $3, $4)
		RETURNING address_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		address.UserID,
		address.FullAddress,
		address.PostalCode,
		address.City,
	).Scan(&address.AddressID)

	if err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

func (r *addressRepository) Update(ctx context.Context, address *domain.Address) error {
	query := `
		UPDATE addresses
		SET full_address = $2, postal_code = $3, city = $4
		WHERE address_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, address.AddressID, address.FullAddress, address.PostalCode, address.City)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}

	return nil
}

func (r *addressRepository) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE address_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrAddressNotFound
	}

	return nil
}
