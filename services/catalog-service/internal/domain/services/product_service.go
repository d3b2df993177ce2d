package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/pkg/utils"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/messaging"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/adapters/storage"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	serviceutils "github.com/athebyme/storefront-platform/services/catalog-service/internal/utils"
)

// ProductService предоставляет бизнес-логику для работы с товарами каталога
type ProductService struct {
	repository storage.CatalogStorageInterface
	cache      interfaces.CachePort
	messaging  interfaces.MessagingPort
	logger     interfaces.LoggerPort
	cacheTTL   time.Duration
}

// NewProductService создает новый экземпляр ProductService.
// messaging может быть nil, тогда события не публикуются
func NewProductService(
	repository storage.CatalogStorageInterface,
	cache interfaces.CachePort,
	msg interfaces.MessagingPort,
	logger interfaces.LoggerPort,
	cacheTTL time.Duration,
) *ProductService {
	return &ProductService{
		repository: repository,
		cache:      cache,
		messaging:  msg,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

func productCacheKey(productID string) string {
	return "product:" + productID
}

// GetProduct получает товар по ID, используя кэш
func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	cacheKey := productCacheKey(productID)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var product models.Product
		if err = json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
		// Испорченная запись кэша не должна ломать чтение
		s.logger.WarnWithContext(ctx, "не удалось разобрать товар из кэша",
			interfaces.LogField{Key: "product_id", Value: productID})
	} else if !errors.Is(err, serviceutils.ErrCacheMiss) {
		s.logger.WarnWithContext(ctx, "ошибка чтения из кэша",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	product, err := s.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, serviceutils.ErrProductNotFound
	}

	if data, err := json.Marshal(product); err == nil {
		if err = s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
			s.logger.WarnWithContext(ctx, "ошибка записи товара в кэш",
				interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}

	return product, nil
}

// ListProducts возвращает страницу товаров по фильтру
func (s *ProductService) ListProducts(ctx context.Context, filter *models.ProductFilter, pagination *utils.Pagination) ([]*models.Product, error) {
	filters := map[string]interface{}{}
	if filter != nil {
		filters = filter.ToMap()
	}

	products, total, err := s.repository.ListProducts(ctx, filters, pagination.GetLimit(), pagination.GetOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	pagination.SetTotal(int64(total))
	return products, nil
}

// DeleteProduct удаляет товар, инвалидирует кэш и публикует событие
func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	product, err := s.repository.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return serviceutils.ErrProductNotFound
	}

	if err = s.repository.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err = s.cache.Delete(ctx, productCacheKey(productID)); err != nil {
		s.logger.WarnWithContext(ctx, "ошибка инвалидации кэша",
			interfaces.LogField{Key: "product_id", Value: productID},
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	s.publishEvent(ctx, messaging.EventProductDeleted, productID)
	return nil
}

// publishEvent публикует событие каталога; ошибки публикации только логируются
func (s *ProductService) publishEvent(ctx context.Context, eventType, entityID string) {
	if s.messaging == nil {
		return
	}

	event := messaging.NewCatalogEvent(eventType, entityID)
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err = s.messaging.PublishWithKey(ctx, messaging.TopicCatalogEvents, entityID, payload); err != nil {
		s.logger.WarnWithContext(ctx, "ошибка публикации события каталога",
			interfaces.LogField{Key: "event", Value: eventType},
			interfaces.LogField{Key: "entity_id", Value: entityID},
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
}
