package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
)

// LoadManifest читает манифест загрузки - JSON-массив записей товаров.
// Порядок записей в файле определяет порядок обработки
func LoadManifest(path string) ([]*models.SourceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения манифеста %s: %w", path, err)
	}

	var records []*models.SourceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ошибка разбора манифеста %s: %w", path, err)
	}

	return records, nil
}
