package interfaces

import "context"

// StoragePort определяет минимальный контракт постоянного хранилища данных.
// Реализация может использовать любую базу данных (PostgreSQL, MySQL, MongoDB и т.д.);
// конкретные репозитории каталога объявляются на стороне потребителя.
type StoragePort interface {
	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close закрывает соединение с хранилищем
	Close() error
}
