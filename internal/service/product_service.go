package service

import (
	"context"
	"errors"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
)

// ProductService defines the interface for product business logic
type ProductService interface {
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	DeleteByID(ctx context.Context, id int) error
	List(ctx context.Context, categoryID *int, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *productService) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productService) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, product *domain.Product) error {
	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return ErrUnknownCategory
		}
		return err
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) Update(ctx context.Context, product *domain.Product) error {
	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return ErrUnknownCategory
		}
		return err
	}
	return s.productRepo.Update(ctx, product)
}

func (s *productService) DeleteByID(ctx context.Context, id int) error {
	return s.productRepo.DeleteByID(ctx, id)
}

func (s *productService) List(ctx context.Context, categoryID *int, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.List(ctx, categoryID, page, pageSize, sortBy, sortOrder)
}

func (s *productService) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.Search(ctx, query, page, pageSize)
}
