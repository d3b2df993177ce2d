package interfaces

import "io"

// FileStoragePort определяет интерфейс файлового хранилища загрузок.
// Контракт: созданный файл либо дописывается до конца и закрывается,
// либо удаляется вызывающей стороной через Remove; частично записанные
// файлы не должны оставаться в хранилище.
type FileStoragePort interface {
	// Create создает файл с указанным именем и возвращает writer для записи байтов
	Create(name string) (io.WriteCloser, error)

	// Remove удаляет файл по имени. Удаление отсутствующего файла не является ошибкой
	Remove(name string) error
}
