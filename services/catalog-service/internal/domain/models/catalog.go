package models

import "time"

// Category представляет категорию товаров витрины
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Flag представляет пользовательскую метку товара ("новинка", "хит продаж" и т.д.).
// Position задает порядок отображения на витрине; позиции образуют
// плотную последовательность 0..N-1 без пропусков.
type Flag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product представляет товар витрины
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CategoryID     string    `json:"category_id"`
	FlagIDs        []string  `json:"flag_ids,omitempty"`
	Price          float64   `json:"price"`
	Stock          int       `json:"stock"`
	ThumbnailImage string    `json:"thumbnail_image"`
	Images         []string  `json:"images"`
	ShortDesc      string    `json:"short_desc,omitempty"`
	LongDesc       string    `json:"long_desc,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductFilter представляет модель для фильтрации списка товаров
type ProductFilter struct {
	CategoryID  string `json:"category_id,omitempty"`
	FlagID      string `json:"flag_id,omitempty"`
	Name        string `json:"name,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
}

// ToMap преобразует ProductFilter в map для использования в запросах
func (f *ProductFilter) ToMap() map[string]interface{} {
	result := make(map[string]interface{})

	if f.CategoryID != "" {
		result["category_id"] = f.CategoryID
	}

	if f.FlagID != "" {
		result["flag_id"] = f.FlagID
	}

	if f.Name != "" {
		result["name"] = f.Name
	}

	if f.SearchQuery != "" {
		result["search_query"] = f.SearchQuery
	}

	return result
}
