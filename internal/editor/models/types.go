package models

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// ============================================================
// Region identity
// ============================================================

// RegionID задаёт стабильный идентификатор региона внутри документа.
type RegionID uint64

// Background обозначает фон мишени. Никогда не выделяется документом и не хранится в нём.
const Background RegionID = 0

func (id RegionID) String() string {
	if id == Background {
		return "background"
	}
	return fmt.Sprintf("region-%d", id)
}

// ============================================================
// Fill colors
// ============================================================

var ErrInvalidColor = errors.New("invalid color")

type Color string

const (
	ColorBlack  Color = "black"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorWhite  Color = "white"
)

const DefaultColor = ColorBlack

// Palette в порядке, в котором цвета показываются в выпадающем списке.
var Palette = []Color{ColorBlack, ColorBlue, ColorGreen, ColorOrange, ColorRed, ColorWhite}

func (c Color) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// ParseColor проверяет, что строка входит в палитру.
func ParseColor(s string) (Color, error) {
	c := Color(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// ============================================================
// Shape kinds
// ============================================================

type ShapeKind string

const (
	Rectangle       ShapeKind = "rectangle"
	Oval            ShapeKind = "oval"
	Triangle        ShapeKind = "triangle"
	Silhouette3     ShapeKind = "aqt3"
	Silhouette4     ShapeKind = "aqt4"
	Silhouette5     ShapeKind = "aqt5"
	FreeformPolygon ShapeKind = "freeform_polygon"
)

var Kinds = []ShapeKind{Rectangle, Oval, Triangle, Silhouette3, Silhouette4, Silhouette5, FreeformPolygon}

// Silhouette возвращает вид силуэта по номеру варианта (3, 4 или 5).
func Silhouette(variant int) (ShapeKind, bool) {
	switch variant {
	case 3:
		return Silhouette3, true
	case 4:
		return Silhouette4, true
	case 5:
		return Silhouette5, true
	}
	return "", false
}

func (k ShapeKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// SilhouetteVariant возвращает 3, 4 или 5 для силуэтов и 0 для остальных видов.
func (k ShapeKind) SilhouetteVariant() int {
	switch k {
	case Silhouette3:
		return 3
	case Silhouette4:
		return 4
	case Silhouette5:
		return 5
	}
	return 0
}

// IsBox сообщает, что геометрия задаётся двумя противоположными углами.
func (k ShapeKind) IsBox() bool {
	return k == Rectangle || k == Oval
}

// Marker возвращает служебную метку вида фигуры. Ставится при создании региона.
func (k ShapeKind) Marker() string {
	return "shape:" + string(k)
}
