package models

// Типы стадий конвейера массовой загрузки. Каждая стадия принимает и
// возвращает собственный тип, чтобы выход одной стадии нельзя было
// случайно передать не в ту стадию.

// SourceRecord описывает один товар из входного манифеста.
// Неизменяем после чтения; поля повторяют формат products.json.
type SourceRecord struct {
	Name           string   `json:"name"`
	CategoryName   string   `json:"categoryName"`
	FlagNames      []string `json:"flagNames,omitempty"`
	Price          float64  `json:"price"`
	Stock          int      `json:"stock"`
	ShortDesc      string   `json:"shortDesc,omitempty"`
	LongDesc       string   `json:"longDesc,omitempty"`
	ThumbnailImage string   `json:"thumbnailImage"`
	Images         []string `json:"images"`
}

// ResolvedReferences содержит идентификаторы, найденные по именам из записи.
// Категория обязательна; метки опциональны (ненайденные имена не фатальны).
type ResolvedReferences struct {
	CategoryID string
	FlagIDs    []string
}

// FetchedAsset представляет скачанное и провалидированное изображение,
// сохраненное в файловом хранилище под уникальным именем
type FetchedAsset struct {
	Filename string
}

// AssembledProduct - итоговая форма записи перед сохранением в хранилище.
// Инварианты: Thumbnail всегда заполнен, Gallery непуста.
type AssembledProduct struct {
	Name      string
	Refs      ResolvedReferences
	Price     float64
	Stock     int
	Thumbnail FetchedAsset
	Gallery   []FetchedAsset
	ShortDesc string
	LongDesc  string
}

// ToProduct преобразует собранную запись в модель товара для хранилища
func (a *AssembledProduct) ToProduct() *Product {
	images := make([]string, 0, len(a.Gallery))
	for _, asset := range a.Gallery {
		images = append(images, asset.Filename)
	}

	return &Product{
		Name:           a.Name,
		CategoryID:     a.Refs.CategoryID,
		FlagIDs:        a.Refs.FlagIDs,
		Price:          a.Price,
		Stock:          a.Stock,
		ThumbnailImage: a.Thumbnail.Filename,
		Images:         images,
		ShortDesc:      a.ShortDesc,
		LongDesc:       a.LongDesc,
	}
}

// RunSummary - счетчики итогов одного прогона загрузки.
// Заполняется оркестратором, читается один раз в конце прогона.
type RunSummary struct {
	Succeeded int
	Failed    int
}

// Total возвращает общее число обработанных записей
func (s RunSummary) Total() int {
	return s.Succeeded + s.Failed
}
