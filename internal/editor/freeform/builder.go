package freeform

import (
	"errors"
	"fmt"

	"target-editor/internal/editor/models"
)

// ============================================================
// Freeform Polygon Builder
// ============================================================

// MinPoints задаёт минимум записанных точек для замыкания: три угла плюс
// точка, которая будет совмещена с первой.
const MinPoints = 4

var ErrInsufficientVertices = errors.New("freeform polygon needs at least 3 vertices and must be closed")

type State int

const (
	Empty State = iota
	Accumulating
)

func (s State) String() string {
	if s == Accumulating {
		return "accumulating"
	}
	return "empty"
}

// Edge описывает пунктирный отрезок предпросмотра, в файл не попадает.
type Edge struct {
	From models.Point `json:"from"`
	To   models.Point `json:"to"`
}

type Builder struct {
	vertices []models.Point
	edges    []Edge
	pending  *Edge
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) State() State {
	if len(b.vertices) == 0 {
		return Empty
	}
	return Accumulating
}

// AddVertex добавляет вершину. Если вершина не первая, возвращает ребро
// от предыдущей вершины к новой.
func (b *Builder) AddVertex(p models.Point) (Edge, bool) {
	b.pending = nil

	if n := len(b.vertices); n > 0 {
		edge := Edge{From: b.vertices[n-1], To: p}
		b.vertices = append(b.vertices, p)
		b.edges = append(b.edges, edge)
		return edge, true
	}

	b.vertices = append(b.vertices, p)
	return Edge{}, false
}

// Preview обновляет отрезок от последней вершины до курсора.
func (b *Builder) Preview(cursor models.Point) (Edge, bool) {
	if len(b.vertices) == 0 {
		b.pending = nil
		return Edge{}, false
	}

	edge := Edge{From: b.vertices[len(b.vertices)-1], To: cursor}
	b.pending = &edge
	return edge, true
}

// UndoLast убирает последнюю вершину и её ребро. В пустом состоянии ничего не делает.
func (b *Builder) UndoLast() bool {
	if len(b.vertices) == 0 {
		return false
	}

	b.vertices = b.vertices[:len(b.vertices)-1]
	if len(b.edges) > 0 && len(b.edges) >= len(b.vertices) {
		b.edges = b.edges[:len(b.edges)-1]
	}
	b.pending = nil
	return true
}

// Commit замыкает многоугольник и сбрасывает построитель.
// Последняя записанная точка заменяется первой, чтобы контур сходился без зазора.
func (b *Builder) Commit() ([]models.Point, error) {
	if len(b.vertices) < MinPoints {
		return nil, fmt.Errorf("%w: have %d points", ErrInsufficientVertices, len(b.vertices))
	}

	points := make([]models.Point, len(b.vertices))
	copy(points, b.vertices)
	points[len(points)-1] = points[0]

	b.Reset()
	return points, nil
}

// Reset отбрасывает незавершённый многоугольник.
func (b *Builder) Reset() {
	b.vertices = nil
	b.edges = nil
	b.pending = nil
}

func (b *Builder) Vertices() []models.Point {
	out := make([]models.Point, len(b.vertices))
	copy(out, b.vertices)
	return out
}

func (b *Builder) Edges() []Edge {
	out := make([]Edge, len(b.edges))
	copy(out, b.edges)
	return out
}

func (b *Builder) Pending() (Edge, bool) {
	if b.pending == nil {
		return Edge{}, false
	}
	return *b.pending, true
}
