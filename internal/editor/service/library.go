package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"target-editor/internal/editor/codec"
	"target-editor/internal/editor/models"
	"target-editor/internal/editor/repository"
	"target-editor/internal/editor/session"
)

// ============================================================
// Target Library
// ============================================================

// SaveResult описывает итог сохранения сессии в библиотеку.
type SaveResult struct {
	Entry *models.TargetEntry `json:"entry"`
	IsNew bool                `json:"is_new"`
}

// NewTargetFunc вызывается, когда сохранение создало новый файл мишени.
type NewTargetFunc func(entry models.TargetEntry)

// Library связывает файлы мишеней с их каталогом в sqlite.
type Library struct {
	storage *FileStorage
	repo    *repository.Repository
	onNew   NewTargetFunc
}

func NewLibrary(storage *FileStorage, repo *repository.Repository, onNew NewTargetFunc) *Library {
	if onNew == nil {
		onNew = func(entry models.TargetEntry) {
			log.Printf("[LIBRARY] New target %q at %s", entry.Name, entry.Path)
		}
	}
	return &Library{storage: storage, repo: repo, onNew: onNew}
}

// Save записывает документ сессии под именем name и обновляет каталог.
func (l *Library) Save(ctx context.Context, s *session.Session, name string) (*SaveResult, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	path, err := l.storage.TargetPath(name)
	if err != nil {
		return nil, err
	}
	if err := l.storage.EnsureDir(); err != nil {
		return nil, err
	}

	isNew, err := s.Save(path)
	if err != nil {
		return nil, fmt.Errorf("save target: %w", err)
	}
	s.SetName(name)

	entry, _, err := l.repo.Upsert(ctx, name, path, s.Len())
	if err != nil {
		return nil, fmt.Errorf("register target: %w", err)
	}

	if isNew {
		l.onNew(*entry)
	}
	log.Printf("[LIBRARY] Saved %q (%d regions, new=%v)", name, entry.Regions, isNew)
	return &SaveResult{Entry: entry, IsNew: isNew}, nil
}

// Open загружает мишень из библиотеки в новую сессию.
func (l *Library) Open(ctx context.Context, sessions *session.Manager, name string) (*session.Session, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	path, err := l.storage.TargetPath(name)
	if err != nil {
		return nil, err
	}
	if entry, err := l.repo.GetByName(ctx, name); err == nil {
		path = entry.Path
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return sessions.Open(name, path)
}

func (l *Library) List(ctx context.Context) ([]models.TargetEntry, error) {
	return l.repo.List(ctx)
}

func (l *Library) Get(ctx context.Context, name string) (*models.TargetEntry, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return l.repo.GetByName(ctx, name)
}

// Delete убирает мишень из каталога и удаляет её файл.
func (l *Library) Delete(ctx context.Context, name string) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}
	if err := l.repo.Delete(ctx, name); err != nil {
		return err
	}
	return l.storage.Remove(name)
}

// Sync регистрирует в каталоге файлы, которые лежат в каталоге мишеней, но ещё не учтены.
func (l *Library) Sync(ctx context.Context) (int, error) {
	names, err := l.storage.Names()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, name := range names {
		if _, err := l.repo.GetByName(ctx, name); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return added, err
		}

		path, err := l.storage.TargetPath(name)
		if err != nil {
			continue
		}
		doc, err := codec.LoadFile(path)
		if err != nil {
			log.Printf("[LIBRARY] Skipping %s: %v", path, err)
			continue
		}
		if _, _, err := l.repo.Upsert(ctx, name, path, doc.Len()); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
