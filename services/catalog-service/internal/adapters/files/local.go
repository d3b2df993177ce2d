package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/athebyme/storefront-platform/pkg/interfaces"
)

// LocalFileStorage хранит файлы в локальном каталоге
type LocalFileStorage struct {
	root string
}

// NewLocalFileStorage создает хранилище файлов поверх каталога root.
// Каталог создается, если его еще нет
func NewLocalFileStorage(root string) (interfaces.FileStoragePort, error) {
	if root == "" {
		return nil, fmt.Errorf("uploads directory is empty")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога загрузок %s: %w", root, err)
	}

	return &LocalFileStorage{root: root}, nil
}

// validateName отклоняет имена с разделителями пути, чтобы запись
// не могла выйти за пределы корневого каталога
func (s *LocalFileStorage) validateName(name string) error {
	if name == "" {
		return fmt.Errorf("file name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid file name: %s", name)
	}
	return nil
}

// Create открывает новый файл на запись
func (s *LocalFileStorage) Create(name string) (io.WriteCloser, error) {
	if err := s.validateName(name); err != nil {
		return nil, err
	}

	file, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла %s: %w", name, err)
	}
	return file, nil
}

// Remove удаляет файл из хранилища. Отсутствие файла не считается ошибкой
func (s *LocalFileStorage) Remove(name string) error {
	if err := s.validateName(name); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления файла %s: %w", name, err)
	}
	return nil
}
