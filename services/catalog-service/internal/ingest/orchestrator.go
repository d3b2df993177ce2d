package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
)

// ErrNoGalleryImages ни одно изображение галереи не удалось скачать
var ErrNoGalleryImages = errors.New("no gallery images could be fetched")

// Fetcher скачивает изображение по URL и возвращает имя сохраненного файла
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// ProductInserter вставляет товар в хранилище и возвращает присвоенный ID
type ProductInserter interface {
	InsertProduct(ctx context.Context, product *models.Product) (string, error)
}

// Orchestrator последовательно проводит записи манифеста через конвейер
// загрузки. Записи обрабатываются строго по одной; ошибка одной записи
// никогда не прерывает обработку остальных
type Orchestrator struct {
	resolver *ReferenceResolver
	fetcher  Fetcher
	store    ProductInserter
	files    interfaces.FileStoragePort
	logger   interfaces.LoggerPort
}

// NewOrchestrator создает новый экземпляр Orchestrator
func NewOrchestrator(
	resolver *ReferenceResolver,
	fetcher Fetcher,
	store ProductInserter,
	files interfaces.FileStoragePort,
	logger interfaces.LoggerPort,
) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		fetcher:  fetcher,
		store:    store,
		files:    files,
		logger:   logger,
	}
}

// Run обрабатывает все записи манифеста в порядке следования и возвращает
// итоговые счетчики. Каждая запись увеличивает ровно один счетчик
func (o *Orchestrator) Run(ctx context.Context, records []*models.SourceRecord) models.RunSummary {
	var summary models.RunSummary

	for i, record := range records {
		if err := o.processRecord(ctx, record); err != nil {
			summary.Failed++
			o.logger.Error("запись пропущена",
				interfaces.LogField{Key: "index", Value: i},
				interfaces.LogField{Key: "name", Value: record.Name},
				interfaces.LogField{Key: "error", Value: err.Error()},
			)
			continue
		}

		summary.Succeeded++
		o.logger.Info("товар загружен",
			interfaces.LogField{Key: "index", Value: i},
			interfaces.LogField{Key: "name", Value: record.Name},
		)
	}

	return summary
}

// processRecord проводит одну запись через все стадии конвейера.
// Паника внутри стадий превращается в ошибку записи. Если запись
// завершается ошибкой после скачивания файлов, все ее файлы удаляются:
// после неудачной записи не остается ни товара, ни осиротевших файлов
func (o *Orchestrator) processRecord(ctx context.Context, record *models.SourceRecord) (err error) {
	var fetched []string
	defer func() {
		if err == nil {
			return
		}
		for _, filename := range fetched {
			if removeErr := o.files.Remove(filename); removeErr != nil {
				o.logger.Warn("не удалось удалить файл отмененной записи",
					interfaces.LogField{Key: "filename", Value: filename},
					interfaces.LogField{Key: "error", Value: removeErr.Error()},
				)
			}
		}
	}()

	// Восстановление регистрируется после очистки: при панике сначала
	// выставляется err, и только затем срабатывает удаление файлов
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("паника при обработке записи: %v", r)
		}
	}()

	categoryID, err := o.resolver.ResolveCategory(ctx, record.CategoryName)
	if err != nil {
		return err
	}

	flagIDs, missingFlags, err := o.resolver.ResolveFlags(ctx, record.FlagNames)
	if err != nil {
		return err
	}
	if len(missingFlags) > 0 {
		o.logger.Warn("часть меток не найдена",
			interfaces.LogField{Key: "name", Value: record.Name},
			interfaces.LogField{Key: "missing", Value: missingFlags},
		)
	}

	thumbnailName, err := o.fetcher.Fetch(ctx, NormalizeLink(record.ThumbnailImage))
	if err != nil {
		return fmt.Errorf("ошибка скачивания миниатюры: %w", err)
	}
	fetched = append(fetched, thumbnailName)

	// Галерея скачивается в исходном порядке; неудачные URL просто
	// пропускаются, но хотя бы одно изображение обязательно
	var gallery []models.FetchedAsset
	for _, rawURL := range record.Images {
		filename, fetchErr := o.fetcher.Fetch(ctx, NormalizeLink(rawURL))
		if fetchErr != nil {
			o.logger.Warn("изображение галереи пропущено",
				interfaces.LogField{Key: "name", Value: record.Name},
				interfaces.LogField{Key: "url", Value: rawURL},
				interfaces.LogField{Key: "error", Value: fetchErr.Error()},
			)
			continue
		}
		fetched = append(fetched, filename)
		gallery = append(gallery, models.FetchedAsset{Filename: filename})
	}
	if len(gallery) == 0 {
		return ErrNoGalleryImages
	}

	assembled, err := AssembleProduct(record,
		models.ResolvedReferences{CategoryID: categoryID, FlagIDs: flagIDs},
		models.FetchedAsset{Filename: thumbnailName},
		gallery,
	)
	if err != nil {
		return err
	}

	if _, err = o.store.InsertProduct(ctx, assembled.ToProduct()); err != nil {
		return fmt.Errorf("ошибка сохранения товара: %w", err)
	}

	return nil
}
