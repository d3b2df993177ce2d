package ingest

import (
	"context"
	"fmt"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
)

// CategoryFinder ищет категорию по точному имени.
// Возвращает nil без ошибки, если категория не найдена
type CategoryFinder interface {
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
}

// FlagFinder ищет метки, имена которых входят в переданный набор
type FlagFinder interface {
	FindFlagsByNames(ctx context.Context, names []string) ([]*models.Flag, error)
}

// ReferenceResolver превращает имена категории и меток из записи манифеста
// в идентификаторы хранилища. Категория и метки разрешаются раздельно:
// отсутствие категории фатально для записи, отсутствие части меток - нет
type ReferenceResolver struct {
	categories CategoryFinder
	flags      FlagFinder
}

// NewReferenceResolver создает новый экземпляр ReferenceResolver
func NewReferenceResolver(categories CategoryFinder, flags FlagFinder) *ReferenceResolver {
	return &ReferenceResolver{categories: categories, flags: flags}
}

// ResolveCategory возвращает идентификатор категории по точному имени.
// Отсутствующая категория - ошибка utils.ErrCategoryNotFound
func (r *ReferenceResolver) ResolveCategory(ctx context.Context, name string) (string, error) {
	category, err := r.categories.GetCategoryByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("ошибка поиска категории %q: %w", name, err)
	}
	if category == nil {
		return "", fmt.Errorf("%w: %q", utils.ErrCategoryNotFound, name)
	}
	return category.ID, nil
}

// ResolveFlags возвращает идентификаторы меток для совпавших имен и
// список имен, которых нет в хранилище. Поиск выполняется одним
// пакетным запросом; порядок идентификаторов повторяет порядок имен
func (r *ReferenceResolver) ResolveFlags(ctx context.Context, names []string) (ids []string, missing []string, err error) {
	if len(names) == 0 {
		return nil, nil, nil
	}

	flags, err := r.flags.FindFlagsByNames(ctx, names)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка поиска меток: %w", err)
	}

	idByName := make(map[string]string, len(flags))
	for _, flag := range flags {
		idByName[flag.Name] = flag.ID
	}

	for _, name := range names {
		if id, ok := idByName[name]; ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, name)
		}
	}

	return ids, missing, nil
}
