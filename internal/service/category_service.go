package service

import (
	"context"
	"errors"

	"shopmesh/internal/domain"
	"shopmesh/internal/repository"
)

var (
	ErrCategorySelfParent = errors.New("category cannot be its own parent")
)

// CategoryService defines the interface for category business logic
type CategoryService interface {
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id int) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	DeleteByID(ctx context.Context, id int) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) FindAll(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *categoryService) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, category *domain.Category) error {
	if category.ParentCategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *category.ParentCategoryID); err != nil {
			return err
		}
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *categoryService) Update(ctx context.Context, category *domain.Category) error {
	// The tree stays acyclic through application discipline; direct
	// self-reference is the one shape cheap enough to reject here.
	if category.ParentCategoryID != nil && *category.ParentCategoryID == category.CategoryID {
		return ErrCategorySelfParent
	}
	return s.categoryRepo.Update(ctx, category)
}

func (s *categoryService) DeleteByID(ctx context.Context, id int) error {
	return s.categoryRepo.DeleteByID(ctx, id)
}
