package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"gorm.io/gorm"
)

// CategoryService provides business logic for job categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput represents parameters to create a category.
type CategoryInput struct {
	Name        string `validate:"required,max=255"`
	Description string
}

// ListCategories returns every category ordered by name.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	categories, err := s.categories.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category with a unique name.
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByName(input.Name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{Name: input.Name, Description: input.Description}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category that no job references. Only
// privileged actors may delete categories.
func (s *CategoryService) DeleteCategory(actor Actor, id uint64) error {
	if !PrivilegedOnly.Allow(actor, 0) {
		return ErrForbidden
	}

	if err := s.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryInUse):
			return err
		default:
			return fmt.Errorf("failed to delete category: %w", err)
		}
	}
	return nil
}
