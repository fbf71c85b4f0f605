package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"target-editor/internal/editor/codec"
	"target-editor/internal/editor/document"
	"target-editor/internal/editor/freeform"
	"target-editor/internal/editor/models"
	"target-editor/internal/editor/render"
	"target-editor/internal/editor/shapes"
)

// ============================================================
// Tools
// ============================================================

var ErrUnknownTool = errors.New("unknown tool")

type Tool string

const (
	ToolCursor    Tool = "cursor"
	ToolRectangle Tool = "rectangle"
	ToolOval      Tool = "oval"
	ToolTriangle  Tool = "triangle"
	ToolAQT3      Tool = "aqt3"
	ToolAQT4      Tool = "aqt4"
	ToolAQT5      Tool = "aqt5"
	ToolFreeform  Tool = "freeform"
)

var Tools = []Tool{ToolCursor, ToolRectangle, ToolOval, ToolTriangle, ToolAQT3, ToolAQT4, ToolAQT5, ToolFreeform}

func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// ShapeKind возвращает вид фигуры, которую ставит инструмент. Для курсора и
// произвольного многоугольника фигуры из каталога нет.
func (t Tool) ShapeKind() (models.ShapeKind, bool) {
	switch t {
	case ToolRectangle:
		return models.Rectangle, true
	case ToolOval:
		return models.Oval, true
	case ToolTriangle:
		return models.Triangle, true
	case ToolAQT3:
		return models.Silhouette3, true
	case ToolAQT4:
		return models.Silhouette4, true
	case ToolAQT5:
		return models.Silhouette5, true
	}
	return "", false
}

// ============================================================
// Session
// ============================================================

// Preview описывает то, что редактор рисует под курсором: контур будущей фигуры
// или ребро от последней вершины многоугольника.
type Preview struct {
	Kind     models.ShapeKind `json:"kind,omitempty"`
	Geometry []models.Point   `json:"geometry,omitempty"`
	Edge     *freeform.Edge   `json:"edge,omitempty"`
}

// Session соответствует одному окну редактора: документ, его холст, активный инструмент
// и выделение. События обрабатываются по одному.
type Session struct {
	mu sync.Mutex

	id      string
	name    string
	doc     *document.Document
	canvas  *render.Canvas
	builder *freeform.Builder

	tool      Tool
	selected  models.RegionID
	updatedAt time.Time
}

func newSession(id, name string, doc *document.Document, canvas *render.Canvas) *Session {
	return &Session{
		id:        id,
		name:      name,
		doc:       doc,
		canvas:    canvas,
		builder:   freeform.NewBuilder(),
		tool:      ToolCursor,
		selected:  models.Background,
		updatedAt: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// SelectTool переключает инструмент. Уход с произвольного многоугольника
// сбрасывает незаконченный контур, а не завершает его.
func (s *Session) SelectTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t != ToolFreeform {
		s.builder.Reset()
	}
	s.tool = t
	s.touch()
	return nil
}

func (s *Session) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// ============================================================
// Pointer events
// ============================================================

// Click обрабатывает левый клик. Возвращает созданный регион для инструментов фигур
// и выделенный регион для курсора (фон, если под точкой ничего нет).
func (s *Session) Click(p models.Point) (models.RegionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch s.tool {
	case ToolFreeform:
		s.builder.AddVertex(p)
		return models.Background, nil
	case ToolCursor:
		s.selected = s.doc.RegionAt(p)
		return s.selected, nil
	}

	kind, _ := s.tool.ShapeKind()
	return s.doc.CreateRegion(kind, p)
}

// Hover возвращает подсказку для текущего инструмента.
func (s *Session) Hover(p models.Point) Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	switch s.tool {
	case ToolCursor:
		return Preview{}
	case ToolFreeform:
		edge, ok := s.builder.Preview(p)
		if !ok {
			return Preview{Geometry: shapes.VertexMarker(p)}
		}
		return Preview{Geometry: shapes.VertexMarker(p), Edge: &edge}
	}

	kind, _ := s.tool.ShapeKind()
	geometry, err := shapes.MakeDefault(kind, p)
	if err != nil {
		return Preview{}
	}
	return Preview{Kind: kind, Geometry: geometry}
}

// Commit обрабатывает правый клик и завершает произвольный многоугольник.
func (s *Session) Commit() (models.RegionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tool != ToolFreeform {
		return models.Background, nil
	}
	s.touch()
	return s.doc.CommitFreeform(s.builder)
}

// Undo убирает последнюю вершину незаконченного многоугольника.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tool != ToolFreeform {
		return false
	}
	s.touch()
	return s.builder.UndoLast()
}

// ============================================================
// Selection actions
// ============================================================

func (s *Session) Selected() models.RegionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Selection возвращает копию выделенного региона.
func (s *Session) Selection() (document.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Region(s.selected)
}

func (s *Session) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.DeleteRegion(s.selected); err != nil {
		return err
	}
	s.selected = models.Background
	s.touch()
	return nil
}

func (s *Session) BringForward() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.doc.BringForward(s.selected)
}

func (s *Session) SendBackward() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.doc.SendBackward(s.selected)
}

func (s *Session) SetColor(color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.doc.SetFillColor(s.selected, color)
}

func (s *Session) SetTags(tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.doc.ReplaceUserTags(s.selected, tags)
}

// ============================================================
// Persistence & export
// ============================================================

// Save записывает документ и сообщает, появился ли новый файл.
func (s *Session) Save(path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(path)
	isNew := errors.Is(err, fs.ErrNotExist)
	if err != nil && !isNew {
		return false, fmt.Errorf("stat target: %w", err)
	}

	if err := codec.SaveFile(path, s.doc); err != nil {
		return false, err
	}
	return isNew, nil
}

func (s *Session) WriteSVG(w io.Writer, opts render.Options) error {
	s.mu.Lock()
	regions := s.canvas.Regions()
	s.mu.Unlock()
	return render.SVG(w, regions, opts)
}

func (s *Session) WritePNG(w io.Writer, opts render.Options) error {
	s.mu.Lock()
	regions := s.canvas.Regions()
	s.mu.Unlock()
	return render.PNG(w, regions, opts)
}

// ============================================================
// Snapshot
// ============================================================

type RegionView struct {
	ID       models.RegionID  `json:"id"`
	Kind     models.ShapeKind `json:"kind"`
	Geometry []models.Point   `json:"geometry"`
	Fill     models.Color     `json:"fill"`
	Tags     []string         `json:"tags"`
}

type Snapshot struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tool      Tool            `json:"tool"`
	Selected  models.RegionID `json:"selected"`
	Regions   []RegionView    `json:"regions"`
	Vertices  []models.Point  `json:"vertices"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Snapshot возвращает состояние сессии для клиента (регионы снизу вверх).
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	regions := s.doc.Regions()
	views := make([]RegionView, 0, len(regions))
	for _, r := range regions {
		views = append(views, RegionView{
			ID:       r.ID,
			Kind:     r.Kind,
			Geometry: r.Geometry,
			Fill:     r.Fill,
			Tags:     r.Tags.Values(),
		})
	}

	return Snapshot{
		ID:        s.id,
		Name:      s.name,
		Tool:      s.tool,
		Selected:  s.selected,
		Regions:   views,
		Vertices:  s.builder.Vertices(),
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Len()
}

func (s *Session) lastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}
