package service

import (
	"context"

	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/blog-platform-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categories repository.CategoryRepository
	log        zerolog.Logger
}

func newCategoryService(categories repository.CategoryRepository, log zerolog.Logger) *categoryService {
	return &categoryService{
		categories: categories,
		log:        log.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, models.ErrNotFound
	}
	return category, nil
}

// Create adds a category. Duplicate names are allowed.
func (s *categoryService) Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategory(in); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, in *models.CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategory(in); err != nil {
		return nil, err
	}

	category := &models.Category{ID: id, Name: in.Name}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Int64("category_id", id).Str("name", category.Name).Msg("Category updated")
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("category_id", id).Msg("Category deleted")
	return nil
}

func (s *categoryService) Count(ctx context.Context) (int, error) {
	return s.categories.Count(ctx)
}
