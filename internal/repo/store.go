package meta

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/pkg/partsproto"
)

// FileStore хранит дескриптор рядом с частями, в файле !split_info.txt.
type FileStore struct{}

// NewFileStore создаёт хранилище дескрипторов на локальном диске.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Save записывает дескриптор в каталог частей и возвращает путь к файлу.
func (s *FileStore) Save(dir string, d models.Descriptor) (string, error) {
	b, err := Marshal(d)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, partsproto.DescriptorName)
	if err = os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("%w: write descriptor: %w", models.ErrIO, err)
	}

	return path, nil
}

// Load читает дескриптор по пути к файлу.
func (s *FileStore) Load(path string) (models.Descriptor, error) {
	// Дескриптор маленький, ReadFile достаточно.
	b, err := os.ReadFile(path)
	if err != nil {
		return models.Descriptor{}, fmt.Errorf("%w: read descriptor: %w", models.ErrIO, err)
	}

	return Unmarshal(b)
}
