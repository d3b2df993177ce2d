package ingest

import (
	"errors"

	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
)

// Ошибки сборки записи
var (
	// ErrThumbnailRequired у записи отсутствует миниатюра
	ErrThumbnailRequired = errors.New("thumbnail asset is required")
	// ErrEmptyGallery у записи нет ни одного изображения галереи
	ErrEmptyGallery = errors.New("gallery must contain at least one asset")
)

// AssembleProduct собирает итоговую запись товара из разрешенных ссылок и
// скачанных файлов. Цена, остаток и описания переносятся из исходной
// записи без какой-либо валидации
func AssembleProduct(record *models.SourceRecord, refs models.ResolvedReferences, thumbnail models.FetchedAsset, gallery []models.FetchedAsset) (*models.AssembledProduct, error) {
	if thumbnail.Filename == "" {
		return nil, ErrThumbnailRequired
	}
	if len(gallery) == 0 {
		return nil, ErrEmptyGallery
	}

	return &models.AssembledProduct{
		Name:      record.Name,
		Refs:      refs,
		Price:     record.Price,
		Stock:     record.Stock,
		Thumbnail: thumbnail,
		Gallery:   gallery,
		ShortDesc: record.ShortDesc,
		LongDesc:  record.LongDesc,
	}, nil
}
