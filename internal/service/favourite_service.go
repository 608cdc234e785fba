package service

import (
	"context"
	"fmt"
	"time"

	"shopmesh/internal/client"
	"shopmesh/internal/config"
	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
	"shopmesh/internal/resilience"

	"go.uber.org/zap"
)

// FavouriteView is the outward representation of a favourite, hydrated
// with user and product details fetched from the owning services. A
// nil User or Product means the lookup degraded; when detail fetching
// is toggled off the fields carry identifier-only placeholders instead.
type FavouriteView struct {
	UserID    int                   `json:"userId"`
	ProductID int                   `json:"productId"`
	LikeDate  time.Time             `json:"likeDate"`
	User      *client.UserDetail    `json:"user"`
	Product   *client.ProductDetail `json:"product"`
}

// FavouriteService defines the interface for favourite business logic
type FavouriteService interface {
	FindAll(ctx context.Context) ([]FavouriteView, error)
	FindByID(ctx context.Context, id domain.FavouriteID) (*FavouriteView, error)
	Save(ctx context.Context, favourite *domain.Favourite) error
	DeleteByID(ctx context.Context, id domain.FavouriteID) error
}

type favouriteService struct {
	favouriteRepo repository.FavouriteRepository
	users         client.UserFetcher
	products      client.ProductFetcher
	features      config.Features
	executor      *resilience.Executor
	logger        *zap.Logger
}

// NewFavouriteService creates a new instance of FavouriteService
func NewFavouriteService(
	favouriteRepo repository.FavouriteRepository,
	users client.UserFetcher,
	products client.ProductFetcher,
	features config.Features,
	executor *resilience.Executor,
	logger *zap.Logger,
) FavouriteService {
	return &favouriteService{
		favouriteRepo: favouriteRepo,
		users:         users,
		products:      products,
		features:      features,
		executor:      executor,
		logger:        logger,
	}
}

// FindAll returns all favourites with remote details merged in. Remote
// problems never surface as errors: a failed lookup leaves that row's
// field nil, and a failed local load degrades to an empty list.
func (s *favouriteService) FindAll(ctx context.Context) ([]FavouriteView, error) {
	favourites, err := s.favouriteRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to load favourites, degrading to empty list", zap.Error(err))
		return []FavouriteView{}, nil
	}

	views := make([]FavouriteView, 0, len(favourites))
	for _, f := range favourites {
		views = append(views, s.enrich(ctx, f))
	}
	return views, nil
}

// FindByID returns one favourite with remote details merged in. Only a
// missing local row is an error; remote failures degrade the row.
func (s *favouriteService) FindByID(ctx context.Context, id domain.FavouriteID) (*FavouriteView, error) {
	favourite, err := s.favouriteRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrFavouriteNotFound {
			return nil, repository.ErrFavouriteNotFound
		}
		// Local store trouble short of "not found" degrades to the
		// identifier-only shape built from the requested key.
		s.logger.Error("failed to load favourite, returning degraded view", zap.Error(err))
		return &FavouriteView{UserID: id.UserID, ProductID: id.ProductID, LikeDate: id.LikeDate}, nil
	}

	view := s.enrich(ctx, favourite)
	return &view, nil
}

func (s *favouriteService) Save(ctx context.Context, favourite *domain.Favourite) error {
	if favourite.LikeDate.IsZero() {
		favourite.LikeDate = time.Now()
	}

	if err := s.favouriteRepo.Save(ctx, favourite); err != nil {
		return fmt.Errorf("failed to save favourite: %w", err)
	}
	return nil
}

func (s *favouriteService) DeleteByID(ctx context.Context, id domain.FavouriteID) error {
	return s.favouriteRepo.DeleteByID(ctx, id)
}

// enrich hydrates one row. The two lookups are independent: the user
// fetch failing does not touch a product detail that succeeded.
func (s *favouriteService) enrich(ctx context.Context, f *domain.Favourite) FavouriteView {
	view := FavouriteView{UserID: f.UserID, ProductID: f.ProductID, LikeDate: f.LikeDate}

	if !s.features.FetchDetailsEnabled() {
		view.User = &client.UserDetail{UserID: f.UserID}
		view.Product = &client.ProductDetail{ProductID: f.ProductID}
		return view
	}

	if err := s.executor.Do(ctx, "user-service", func(ctx context.Context) error {
		detail, err := s.users.FetchUser(ctx, f.UserID)
		if err != nil {
			return err
		}
		view.User = detail
		return nil
	}); err != nil {
		s.logger.Warn("user detail lookup degraded",
			zap.Int("userId", f.UserID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	if err := s.executor.Do(ctx, "product-service", func(ctx context.Context) error {
		detail, err := s.products.FetchProduct(ctx, f.ProductID)
		if err != nil {
			return err
		}
		view.Product = detail
		return nil
	}); err != nil {
		s.logger.Warn("product detail lookup degraded",
			zap.Int("productId", f.ProductID),
			zap.Bool("circuitOpen", resilience.IsCircuitOpen(err)),
			zap.Error(err),
		)
	}

	return view
}
