package messaging

import "time"

// Топики событий каталога
const (
	TopicCatalogEvents = "catalog.events"
)

// Типы событий каталога
const (
	EventProductCreated = "product_created"
	EventProductDeleted = "product_deleted"
	EventFlagUpdated    = "flag_updated"
)

// CatalogEvent событие изменения каталога, публикуемое в Kafka
type CatalogEvent struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogEvent создает событие каталога с текущим временем
func NewCatalogEvent(eventType, entityID string) *CatalogEvent {
	return &CatalogEvent{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
