package services

import (
	"context"
	"fmt"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/storage"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
)

// CategoryService управляет категориями каталога
type CategoryService struct {
	repository storage.CatalogStorageInterface
}

// NewCategoryService создает новый экземпляр CategoryService
func NewCategoryService(repository storage.CatalogStorageInterface) *CategoryService {
	return &CategoryService{repository: repository}
}

// CreateCategory создает категорию
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := s.repository.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListCategories возвращает все категории
func (s *CategoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repository.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryByName получает категорию по точному имени
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.repository.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	return category, nil
}
