package render

import (
	"math"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"
)

// ============================================================
// Canvas
// ============================================================

// Canvas реализует поверхность отрисовки в памяти: хранит собственный порядок
// наложения и отвечает на вопрос, какой регион лежит под точкой.
type Canvas struct {
	items map[models.RegionID]document.Region
	stack []models.RegionID
}

func NewCanvas() *Canvas {
	return &Canvas{
		items: make(map[models.RegionID]document.Region),
	}
}

func (c *Canvas) Draw(r document.Region) {
	if _, ok := c.items[r.ID]; !ok {
		c.stack = append(c.stack, r.ID)
	}
	c.items[r.ID] = r.Clone()
}

func (c *Canvas) Erase(id models.RegionID) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	c.unstack(id)
}

func (c *Canvas) Raise(id, above models.RegionID) {
	c.restack(id, above, 1)
}

func (c *Canvas) Lower(id, below models.RegionID) {
	c.restack(id, below, 0)
}

// RegionAt возвращает верхний регион, содержащий точку, иначе фон.
func (c *Canvas) RegionAt(p models.Point) models.RegionID {
	for i := len(c.stack) - 1; i >= 0; i-- {
		r := c.items[c.stack[i]]
		if Contains(r, p) {
			return r.ID
		}
	}
	return models.Background
}

// Stack возвращает порядок наложения снизу вверх.
func (c *Canvas) Stack() []models.RegionID {
	out := make([]models.RegionID, len(c.stack))
	copy(out, c.stack)
	return out
}

// Regions возвращает регионы холста в порядке наложения.
func (c *Canvas) Regions() []document.Region {
	out := make([]document.Region, 0, len(c.stack))
	for _, id := range c.stack {
		out = append(out, c.items[id].Clone())
	}
	return out
}

func (c *Canvas) restack(id, ref models.RegionID, offset int) {
	if _, ok := c.items[id]; !ok {
		return
	}
	if _, ok := c.items[ref]; !ok {
		return
	}

	c.unstack(id)
	i := c.index(ref) + offset
	c.stack = append(c.stack, 0)
	copy(c.stack[i+1:], c.stack[i:])
	c.stack[i] = id
}

func (c *Canvas) unstack(id models.RegionID) {
	if i := c.index(id); i >= 0 {
		c.stack = append(c.stack[:i], c.stack[i+1:]...)
	}
}

func (c *Canvas) index(id models.RegionID) int {
	for i, existing := range c.stack {
		if existing == id {
			return i
		}
	}
	return -1
}

// ============================================================
// Hit testing
// ============================================================

// Contains проверяет попадание точки в фигуру региона.
func Contains(r document.Region, p models.Point) bool {
	switch {
	case r.Kind == models.Rectangle:
		minP, maxP := corners(r.Geometry)
		return p.X >= minP.X && p.X <= maxP.X && p.Y >= minP.Y && p.Y <= maxP.Y
	case r.Kind == models.Oval:
		return ellipseContains(r.Geometry, p)
	default:
		return polygonContains(r.Geometry, p)
	}
}

func corners(box []models.Point) (models.Point, models.Point) {
	if len(box) < 2 {
		return models.Point{}, models.Point{}
	}
	a, b := box[0], box[1]
	return models.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		models.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func ellipseContains(box []models.Point, p models.Point) bool {
	minP, maxP := corners(box)
	rx := (maxP.X - minP.X) / 2
	ry := (maxP.Y - minP.Y) / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - (minP.X + rx)) / rx
	dy := (p.Y - (minP.Y + ry)) / ry
	return dx*dx+dy*dy <= 1
}

// polygonContains применяет правило чётности по лучу вправо от точки.
func polygonContains(points []models.Point, p models.Point) bool {
	inside := false
	n := len(points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
