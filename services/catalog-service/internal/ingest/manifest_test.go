package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	manifest := `[
		{
			"name": "Кубики",
			"categoryName": "Игрушки",
			"flagNames": ["Новинка"],
			"price": 499.0,
			"stock": 7,
			"shortDesc": "деревянные",
			"thumbnailImage": "https://example.com/thumb.jpg",
			"images": ["https://example.com/1.jpg", "https://example.com/2.jpg"]
		},
		{
			"name": "Мяч",
			"categoryName": "Спорт",
			"price": 150,
			"stock": 3,
			"thumbnailImage": "https://example.com/ball.jpg",
			"images": ["https://example.com/ball-side.jpg"]
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	records, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Кубики", records[0].Name)
	assert.Equal(t, "Игрушки", records[0].CategoryName)
	assert.Equal(t, []string{"Новинка"}, records[0].FlagNames)
	assert.Equal(t, 499.0, records[0].Price)
	assert.Len(t, records[0].Images, 2)

	assert.Equal(t, "Мяч", records[1].Name)
	assert.Empty(t, records[1].FlagNames)
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadManifest_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadManifest(path)
	assert.Error(t, err)
}
