package models

// ============================================================
// SVG Elements
// ============================================================

// SVGElement описывает фигуру, прочитанная из SVG, до сопоставления с видом региона.
type SVGElement struct {
	Tag      string // rect, circle, ellipse, polygon, path
	ID       string
	Kind     string // значение data-kind, если оно есть
	Tags     []string
	Fill     string
	Geometry any // RectGeometry | EllipseGeometry | PolyGeometry
}

type RectGeometry struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type EllipseGeometry struct {
	CX float64
	CY float64
	RX float64
	RY float64
}

// PolyGeometry хранит вершины polygon или path. Closed означает, что контур
// замкнут (polygon всегда, path только командой Z).
type PolyGeometry struct {
	Points []Point
	Closed bool
}
