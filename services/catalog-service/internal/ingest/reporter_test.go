package ingest

import (
	"testing"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	summary := models.RunSummary{Succeeded: 10, Failed: 2}

	report := FormatSummary(summary)

	assert.Contains(t, report, "успешно 10")
	assert.Contains(t, report, "с ошибками 2")
	assert.Contains(t, report, "всего 12")

	// Повторный вызов с тем же итогом дает тот же текст
	assert.Equal(t, report, FormatSummary(summary))
}
