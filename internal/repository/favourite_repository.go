package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmesh/internal/domain"
)

var (
	ErrFavouriteNotFound = errors.New("favourite not found")
)

// FavouriteRepository defines the interface for favourite data access.
// Favourites are keyed by the composite (userId, productId, likeDate)
// value key; there is no surrogate id.
type FavouriteRepository interface {
	FindAll(ctx context.Context) ([]*domain.Favourite, error)
	FindByID(ctx context.Context, id domain.FavouriteID) (*domain.Favourite, error)
	Save(ctx context.Context, favourite *domain.Favourite) error
	DeleteByID(ctx context.Context, id domain.FavouriteID) error
}

type favouriteRepository struct {
	db *sql.DB
}

// NewFavouriteRepository creates a new instance of FavouriteRepository
func NewFavouriteRepository(db *sql.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

func (r *favouriteRepository) FindAll(ctx context.Context) ([]*domain.Favourite, error) {
	query := `
		SELECT user_id, product_id, like_date
		FROM favourites
		ORDER BY like_date, user_id, product_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	defer rows.Close()

	favourites := []*domain.Favourite{}
	for rows.Next() {
		f := &domain.Favourite{}
		if err := rows.Scan(&f.UserID, &f.ProductID, &f.LikeDate); err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favourites = append(favourites, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favourites: %w", err)
	}

	return favourites, nil
}

func (r *favouriteRepository) FindByID(ctx context.Context, id domain.FavouriteID) (*domain.Favourite, error) {
	query := `
		SELECT user_id, product_id, like_date
		FROM favourites
		WHERE user_id = $1 AND product_id = $2 AND like_date = $3
	`

	f := &domain.Favourite{}
	err := r.db.QueryRowContext(ctx, query, id.UserID, id.ProductID, id.LikeDate).
		Scan(&f.UserID, &f.ProductID, &f.LikeDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrFavouriteNotFound
		}
		return nil, fmt.Errorf("failed to find favourite by ID: %w", err)
	}

	return f, nil
}

// Save inserts the favourite; saving the same composite key again is a
// no-op upsert since the row carries no other columns.
func (r *favouriteRepository) Save(ctx context.Context, favourite *domain.Favourite) error {
	query := `
		INSERT INTO favourites (user_id, product_id, like_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id, like_date) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, favourite.UserID, favourite.ProductID, favourite.LikeDate); err != nil {
		return fmt.Errorf("failed to save favourite: %w", err)
	}

	return nil
}

func (r *favouriteRepository) DeleteByID(ctx context.Context, id domain.FavouriteID) error {
	query := `DELETE FROM favourites WHERE user_id = $1 AND product_id = $2 AND like_date = $3`

	result, err := r.db.ExecContext(ctx, query, id.UserID, id.ProductID, id.LikeDate)
	if err != nil {
		return fmt.Errorf("failed to delete favourite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrFavouriteNotFound
	}

	return nil
}
