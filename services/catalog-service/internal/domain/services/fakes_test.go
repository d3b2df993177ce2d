package services

import (
	"context"
	"sort"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
	"github.com/google/uuid"
)

// fakeStorage - хранилище каталога в памяти для тестов сервисов
type fakeStorage struct {
	categories map[string]*models.Category
	flags      map[string]*models.Flag
	products   map[string]*models.Product

	productReads int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		categories: map[string]*models.Category{},
		flags:      map[string]*models.Flag{},
		products:   map[string]*models.Product{},
	}
}

func (s *fakeStorage) SaveCategory(_ context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	s.categories[category.ID] = category
	return nil
}

func (s *fakeStorage) GetCategoryByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeStorage) ListCategories(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeStorage) SaveFlag(_ context.Context, flag *models.Flag) error {
	if flag.ID == "" {
		flag.ID = uuid.New().String()
	}
	flag.UpdatedAt = time.Now().UTC()
	s.flags[flag.ID] = flag
	return nil
}

func (s *fakeStorage) GetFlag(_ context.Context, flagID string) (*models.Flag, error) {
	return s.flags[flagID], nil
}

func (s *fakeStorage) ListFlags(_ context.Context) ([]*models.Flag, error) {
	var out []*models.Flag
	for _, f := range s.flags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *fakeStorage) FindFlagsByNames(_ context.Context, names []string) ([]*models.Flag, error) {
	wanted := map[string]bool{}
	for _, n := range names {
		wanted[n] = true
	}
	var out []*models.Flag
	for _, f := range s.flags {
		if wanted[f.Name] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeStorage) CountFlags(_ context.Context) (int, error) {
	return len(s.flags), nil
}

func (s *fakeStorage) UpdateFlag(_ context.Context, flag *models.Flag) error {
	s.flags[flag.ID] = flag
	return nil
}

func (s *fakeStorage) DeleteFlag(_ context.Context, flagID string) (*models.Flag, error) {
	flag, ok := s.flags[flagID]
	if !ok {
		return nil, nil
	}
	delete(s.flags, flagID)
	return flag, nil
}

func (s *fakeStorage) ShiftFlagPositionsAfter(_ context.Context, position int) error {
	for _, f := range s.flags {
		if f.Position > position {
			f.Position--
		}
	}
	return nil
}

func (s *fakeStorage) UpdateFlagPosition(_ context.Context, flagID string, position int) error {
	if f, ok := s.flags[flagID]; ok {
		f.Position = position
	}
	return nil
}

func (s *fakeStorage) InsertProduct(_ context.Context, product *models.Product) (string, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	s.products[product.ID] = product
	return product.ID, nil
}

func (s *fakeStorage) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	s.productReads++
	return s.products[productID], nil
}

func (s *fakeStorage) ListProducts(_ context.Context, filters map[string]interface{}, limit, offset int) ([]*models.Product, int, error) {
	var out []*models.Product
	for _, p := range s.products {
		if categoryID, ok := filters["category_id"]; ok && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := len(out)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (s *fakeStorage) DeleteProduct(_ context.Context, productID string) error {
	delete(s.products, productID)
	return nil
}

// fakeTxManager выполняет замыкание без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCache - кэш в памяти
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, utils.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, _ string) error { return nil }
func (c *fakeCache) Close() error                                      { return nil }

// fakeMessaging запоминает опубликованные сообщения
type fakeMessaging struct {
	published []*interfaces.Message
}

func (m *fakeMessaging) Publish(_ context.Context, topic string, message []byte) error {
	m.published = append(m.published, &interfaces.Message{Topic: topic, Value: message})
	return nil
}

func (m *fakeMessaging) PublishWithKey(_ context.Context, topic, key string, message []byte) error {
	m.published = append(m.published, &interfaces.Message{Topic: topic, Key: key, Value: message})
	return nil
}

func (m *fakeMessaging) Subscribe(_ context.Context, _ string, _ interfaces.MessageHandler) (func() error, error) {
	return func() error { return nil }, nil
}

func (m *fakeMessaging) Close() error { return nil }

// nopLogger - пустая реализация LoggerPort
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func (nopLogger) DebugWithContext(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) InfoWithContext(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) WarnWithContext(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) ErrorWithContext(ctx context.Context, msg string, args ...interface{}) {}

func (l nopLogger) WithFields(fields ...interfaces.LogField) interfaces.LoggerPort { return l }
func (l nopLogger) WithField(key string, value interface{}) interfaces.LoggerPort  { return l }
func (nopLogger) Sync() error                                                      { return nil }
