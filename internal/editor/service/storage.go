package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"target-editor/internal/editor/codec"
)

// ============================================================
// File Storage
// ============================================================

var ErrInvalidName = errors.New("invalid target name")

// FileStorage раскладывает файлы мишеней по каталогу targets/.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) Root() string {
	return s.root
}

// TargetPath возвращает путь файла мишени. Имя не может выходить за пределы каталога.
func (s *FileStorage) TargetPath(name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, name+codec.Extension), nil
}

func (s *FileStorage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir targets dir: %w", err)
	}
	return nil
}

// Names возвращает имена сохранённых мишеней без расширения.
func (s *FileStorage) Names() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read targets dir: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != codec.Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), codec.Extension))
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStorage) Remove(name string) error {
	path, err := s.TargetPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove target: %w", err)
	}
	return nil
}

// NormalizeName отрезает расширение и отклоняет пути и служебные имена.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), codec.Extension)
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}
