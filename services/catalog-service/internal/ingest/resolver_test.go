package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog реализует CategoryFinder и FlagFinder поверх срезов в памяти
type fakeCatalog struct {
	categories  []*models.Category
	flags       []*models.Flag
	categoryErr error
	flagErr     error
}

func (f *fakeCatalog) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) FindFlagsByNames(_ context.Context, names []string) ([]*models.Flag, error) {
	if f.flagErr != nil {
		return nil, f.flagErr
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var matched []*models.Flag
	for _, flag := range f.flags {
		if wanted[flag.Name] {
			matched = append(matched, flag)
		}
	}
	return matched, nil
}

func TestReferenceResolver_ResolveCategory(t *testing.T) {
	catalog := &fakeCatalog{
		categories: []*models.Category{{ID: "cat-1", Name: "Игрушки"}},
	}
	resolver := NewReferenceResolver(catalog, catalog)

	id, err := resolver.ResolveCategory(context.Background(), "Игрушки")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", id)
}

func TestReferenceResolver_CategoryNotFound(t *testing.T) {
	resolver := NewReferenceResolver(&fakeCatalog{}, &fakeCatalog{})

	_, err := resolver.ResolveCategory(context.Background(), "Несуществующая")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrCategoryNotFound))
}

func TestReferenceResolver_CategoryStoreError(t *testing.T) {
	catalog := &fakeCatalog{categoryErr: errors.New("connection refused")}
	resolver := NewReferenceResolver(catalog, catalog)

	_, err := resolver.ResolveCategory(context.Background(), "Игрушки")
	require.Error(t, err)
	assert.False(t, errors.Is(err, utils.ErrCategoryNotFound))
}

func TestReferenceResolver_ResolveFlags(t *testing.T) {
	catalog := &fakeCatalog{
		flags: []*models.Flag{
			{ID: "flag-1", Name: "Новинка"},
			{ID: "flag-2", Name: "Хит"},
		},
	}
	resolver := NewReferenceResolver(catalog, catalog)

	ids, missing, err := resolver.ResolveFlags(context.Background(), []string{"Хит", "Распродажа", "Новинка"})
	require.NoError(t, err)

	// Порядок идентификаторов повторяет порядок имен во входном списке
	assert.Equal(t, []string{"flag-2", "flag-1"}, ids)
	assert.Equal(t, []string{"Распродажа"}, missing)
}

func TestReferenceResolver_ResolveFlagsEmptyInput(t *testing.T) {
	resolver := NewReferenceResolver(&fakeCatalog{}, &fakeCatalog{})

	ids, missing, err := resolver.ResolveFlags(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, missing)
}
