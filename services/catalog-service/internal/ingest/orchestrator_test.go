package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
	"github.com/athebyme/storefront-platform/services/catalog-service/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopLogger - пустая реализация LoggerPort для тестов
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

// fakeFetcher выдает последовательные имена файлов и создает их в хранилище;
// URL из failURLs завершаются ошибкой без создания файла
type fakeFetcher struct {
	storage  *fakeFileStorage
	failURLs map[string]bool
	seq      int
	requests []string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (string, error) {
	f.requests = append(f.requests, rawURL)
	if f.failURLs[rawURL] {
		return "", errors.New("fetch failed")
	}
	f.seq++
	name := fmt.Sprintf("file-%d.jpg", f.seq)
	w, err := f.storage.Create(name)
	if err != nil {
		return "", err
	}
	_, _ = w.Write([]byte("img"))
	_ = w.Close()
	return name, nil
}

// fakeInserter записывает вставленные товары в память
type fakeInserter struct {
	products []*models.Product
	err      error
	panics   bool
}

func (s *fakeInserter) InsertProduct(_ context.Context, product *models.Product) (string, error) {
	if s.panics {
		panic("store exploded")
	}
	if s.err != nil {
		return "", s.err
	}
	s.products = append(s.products, product)
	return product.ID, nil
}

type orchestratorFixture struct {
	catalog *fakeCatalog
	storage *fakeFileStorage
	fetcher *fakeFetcher
	store   *fakeInserter
	orch    *Orchestrator
}

func newOrchestratorFixture() *orchestratorFixture {
	catalog := &fakeCatalog{
		categories: []*models.Category{{ID: "cat-1", Name: "Игрушки"}},
		flags:      []*models.Flag{{ID: "flag-1", Name: "Новинка"}},
	}
	storage := newFakeFileStorage()
	fetcher := &fakeFetcher{storage: storage, failURLs: map[string]bool{}}
	store := &fakeInserter{}

	return &orchestratorFixture{
		catalog: catalog,
		storage: storage,
		fetcher: fetcher,
		store:   store,
		orch: NewOrchestrator(
			NewReferenceResolver(catalog, catalog),
			fetcher, store, storage, nopLogger{},
		),
	}
}

func record(name string) *models.SourceRecord {
	return &models.SourceRecord{
		Name:           name,
		CategoryName:   "Игрушки",
		FlagNames:      []string{"Новинка"},
		Price:          100,
		Stock:          5,
		ThumbnailImage: "https://example.com/" + name + "/thumb.jpg",
		Images: []string{
			"https://example.com/" + name + "/1.jpg",
			"https://example.com/" + name + "/2.jpg",
		},
	}
}

func TestOrchestrator_SuccessfulRun(t *testing.T) {
	f := newOrchestratorFixture()

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{record("a"), record("b")})

	assert.Equal(t, models.RunSummary{Succeeded: 2, Failed: 0}, summary)
	require.Len(t, f.store.products, 2)

	first := f.store.products[0]
	assert.Equal(t, "a", first.Name)
	assert.Equal(t, "cat-1", first.CategoryID)
	assert.Equal(t, []string{"flag-1"}, first.FlagIDs)
	assert.Equal(t, "file-1.jpg", first.ThumbnailImage)
	assert.Equal(t, []string{"file-2.jpg", "file-3.jpg"}, first.Images)

	// 2 записи по 3 файла, ни один не удален
	assert.Len(t, f.storage.names(), 6)
	assert.Empty(t, f.storage.removed)
}

func TestOrchestrator_MissingCategorySkipsRecord(t *testing.T) {
	f := newOrchestratorFixture()

	bad := record("b")
	bad.CategoryName = "Несуществующая"

	summary := f.orch.Run(context.Background(),
		[]*models.SourceRecord{record("a"), bad, record("c")})

	assert.Equal(t, models.RunSummary{Succeeded: 2, Failed: 1}, summary)
	require.Len(t, f.store.products, 2)
	assert.Equal(t, "a", f.store.products[0].Name)
	assert.Equal(t, "c", f.store.products[1].Name)

	// Для отклоненной записи не скачано ни одного файла
	for _, url := range f.fetcher.requests {
		assert.NotContains(t, url, "/b/")
	}
}

func TestOrchestrator_ThumbnailFailureSkipsRecord(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	f.fetcher.failURLs[rec.ThumbnailImage] = true

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	assert.Equal(t, models.RunSummary{Succeeded: 0, Failed: 1}, summary)
	assert.Empty(t, f.store.products)
	assert.Empty(t, f.storage.names())

	// Галерея после провала миниатюры не скачивается
	assert.Equal(t, []string{rec.ThumbnailImage}, f.fetcher.requests)
}

func TestOrchestrator_FailedGalleryURLIsOmitted(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	f.fetcher.failURLs[rec.Images[0]] = true

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	assert.Equal(t, models.RunSummary{Succeeded: 1, Failed: 0}, summary)
	require.Len(t, f.store.products, 1)
	assert.Equal(t, []string{"file-2.jpg"}, f.store.products[0].Images)
}

func TestOrchestrator_AllGalleryFailuresFailRecord(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	f.fetcher.failURLs[rec.Images[0]] = true
	f.fetcher.failURLs[rec.Images[1]] = true

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	assert.Equal(t, models.RunSummary{Succeeded: 0, Failed: 1}, summary)
	assert.Empty(t, f.store.products)

	// Миниатюра была скачана, но после провала записи файл удален
	assert.Empty(t, f.storage.names())
	assert.Equal(t, []string{"file-1.jpg"}, f.storage.removed)
}

func TestOrchestrator_EmptyGalleryFailsRecord(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	rec.Images = nil

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	assert.Equal(t, models.RunSummary{Succeeded: 0, Failed: 1}, summary)
	assert.Empty(t, f.store.products)
	assert.Empty(t, f.storage.names())
}

func TestOrchestrator_PersistenceFailureRemovesFiles(t *testing.T) {
	f := newOrchestratorFixture()
	f.store.err = errors.New("insert failed")

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{record("a")})

	assert.Equal(t, models.RunSummary{Succeeded: 0, Failed: 1}, summary)
	assert.Empty(t, f.storage.names(), "файлы отклоненной записи должны быть удалены")
	assert.Len(t, f.storage.removed, 3)
}

func TestOrchestrator_PanicIsIsolatedPerRecord(t *testing.T) {
	f := newOrchestratorFixture()
	f.store.panics = true

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{record("a"), record("b")})

	// Паника хранилища превращается в ошибку записи, прогон продолжается
	assert.Equal(t, models.RunSummary{Succeeded: 0, Failed: 2}, summary)
	assert.Empty(t, f.store.products)

	// Файлы обеих сорвавшихся записей удалены, как при обычной ошибке
	assert.Empty(t, f.storage.names())
	assert.Len(t, f.storage.removed, 6)
}

func TestOrchestrator_MissingFlagsAreNotFatal(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	rec.FlagNames = []string{"Новинка", "Неизвестная"}

	summary := f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	assert.Equal(t, models.RunSummary{Succeeded: 1, Failed: 0}, summary)
	require.Len(t, f.store.products, 1)
	assert.Equal(t, []string{"flag-1"}, f.store.products[0].FlagIDs)
}

func TestOrchestrator_NormalizesShareLinksBeforeFetch(t *testing.T) {
	f := newOrchestratorFixture()

	rec := record("a")
	rec.ThumbnailImage = "https://drive.google.com/file/d/abc123/view?usp=sharing"

	f.orch.Run(context.Background(), []*models.SourceRecord{rec})

	require.NotEmpty(t, f.fetcher.requests)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=abc123", f.fetcher.requests[0])
}
