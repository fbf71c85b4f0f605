package session

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"target-editor/internal/editor/codec"
	"target-editor/internal/editor/document"
	"target-editor/internal/editor/render"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

var ErrSessionNotFound = errors.New("session not found")

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create открывает сессию с пустой мишенью.
func (m *Manager) Create(name string) *Session {
	canvas := render.NewCanvas()
	doc := document.New(document.WithSurface(canvas))
	return m.register(name, doc, canvas)
}

// Open загружает мишень из файла в новую сессию.
func (m *Manager) Open(name, path string) (*Session, error) {
	canvas := render.NewCanvas()
	doc, err := codec.LoadFile(path, document.WithSurface(canvas))
	if err != nil {
		return nil, err
	}
	return m.register(name, doc, canvas), nil
}

// Adopt передаёт сессии уже собранный документ (например, после импорта SVG).
func (m *Manager) Adopt(name string, doc *document.Document) *Session {
	canvas := render.NewCanvas()
	doc.Attach(canvas)
	return m.register(name, doc, canvas)
}

func (m *Manager) register(name string, doc *document.Document, canvas *render.Canvas) *Session {
	s := newSession(uuid.NewString(), name, doc, canvas)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	log.Printf("[EDITOR] Session %s opened (%q, %d regions)", s.id, name, doc.Len())
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	log.Printf("[EDITOR] Session %s closed", id)
	return nil
}

// IDs возвращает идентификаторы открытых сессий в отсортированном порядке.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseIdle закрывает сессии без событий дольше ttl и возвращает их число.
func (m *Manager) CloseIdle(ttl time.Duration) int {
	deadline := time.Now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for id, s := range m.sessions {
		if s.lastActive().Before(deadline) {
			delete(m.sessions, id)
			closed++
		}
	}
	if closed > 0 {
		log.Printf("[EDITOR] Closed %d idle sessions", closed)
	}
	return closed
}
