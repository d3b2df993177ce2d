package ingest

import (
	"fmt"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
)

// FormatSummary возвращает человекочитаемый итог прогона загрузки.
// Функция чистая: один и тот же итог всегда дает один и тот же текст
func FormatSummary(summary models.RunSummary) string {
	return fmt.Sprintf("Загрузка завершена: всего %d, успешно %d, с ошибками %d",
		summary.Total(), summary.Succeeded, summary.Failed)
}
