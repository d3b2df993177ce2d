package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/google/uuid"
)

// Ошибки валидации скачиваемых изображений
var (
	// ErrInvalidContentType ответ сервера не является изображением
	ErrInvalidContentType = errors.New("content type is not an image")
	// ErrUnsupportedFormat формат изображения не входит в список разрешенных
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// imageExtensions сопоставляет разрешенные content-type расширениям файлов
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ImageFetcher скачивает изображения по URL в файловое хранилище
type ImageFetcher struct {
	client *http.Client
	files  interfaces.FileStoragePort
}

// NewImageFetcher создает новый экземпляр ImageFetcher.
// Нулевой timeout отключает таймаут HTTP-клиента
func NewImageFetcher(files interfaces.FileStoragePort, timeout time.Duration) *ImageFetcher {
	return &ImageFetcher{
		client: &http.Client{Timeout: timeout},
		files:  files,
	}
}

// Fetch скачивает изображение и возвращает имя сохраненного файла.
// Тело ответа передается в хранилище потоково, без буферизации в памяти.
// При ошибке записи частично записанный файл удаляется; при ошибке
// транспорта или валидации типа файл не создается вовсе
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса %s: %w", rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка скачивания %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("сервер вернул статус %d для %s", resp.StatusCode, rawURL)
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0]))
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}

	filename := uuid.New().String() + ext

	file, err := f.files.Create(filename)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла для %s: %w", rawURL, err)
	}

	if _, err = io.Copy(file, resp.Body); err != nil {
		file.Close()
		f.removeQuiet(filename)
		return "", fmt.Errorf("ошибка записи %s: %w", filename, err)
	}

	if err = file.Close(); err != nil {
		f.removeQuiet(filename)
		return "", fmt.Errorf("ошибка закрытия файла %s: %w", filename, err)
	}

	return filename, nil
}

// removeQuiet удаляет файл, игнорируя вторичную ошибку удаления:
// первичная ошибка записи важнее
func (f *ImageFetcher) removeQuiet(filename string) {
	_ = f.files.Remove(filename)
}
