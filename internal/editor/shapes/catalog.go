package shapes

import (
	"errors"
	"fmt"

	"target-editor/internal/editor/models"
)

// ============================================================
// Shape Catalog
// ============================================================

const (
	InitialSize     = 30.0 // половина стороны прямоугольника, овала и треугольника
	SilhouetteScale = 2.5  // множитель для таблиц силуэтов
	VertexSize      = 2.0  // радиус точки вершины произвольного многоугольника
)

var ErrUnsupportedKind = errors.New("shape kind has no catalog geometry")

// DefaultScale возвращает масштаб, с которым фигура ставится на холст.
func DefaultScale(kind models.ShapeKind) float64 {
	if kind.SilhouetteVariant() != 0 {
		return SilhouetteScale
	}
	return InitialSize
}

// MakeDefault строит геометрию фигуры с масштабом по умолчанию.
func MakeDefault(kind models.ShapeKind, anchor models.Point) ([]models.Point, error) {
	return Make(kind, anchor, DefaultScale(kind))
}

// Make строит геометрию фигуры вокруг точки привязки.
// Для прямоугольника, овала и треугольника scale задаёт половину размера,
// для силуэтов это множитель смещений из таблицы.
func Make(kind models.ShapeKind, anchor models.Point, scale float64) ([]models.Point, error) {
	switch kind {
	case models.Rectangle, models.Oval:
		return box(anchor, scale), nil
	case models.Triangle:
		return triangle(anchor, scale), nil
	case models.Silhouette3, models.Silhouette4, models.Silhouette5:
		return silhouette(silhouettes[kind.SilhouetteVariant()], anchor, scale), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

// VertexMarker возвращает рамку точки, которой рисуется вершина многоугольника.
func VertexMarker(p models.Point) []models.Point {
	return box(p, VertexSize)
}

func box(anchor models.Point, size float64) []models.Point {
	return []models.Point{
		anchor.Add(-size, -size),
		anchor.Add(size, size),
	}
}

func triangle(anchor models.Point, size float64) []models.Point {
	apex := anchor.Add(0, -size)
	return []models.Point{
		apex,
		anchor.Add(size, size),
		anchor.Add(-size, size),
		apex,
	}
}

func silhouette(offsets []models.Point, anchor models.Point, scale float64) []models.Point {
	points := make([]models.Point, 0, len(offsets)+1)
	for _, o := range offsets {
		points = append(points, anchor.Add(o.X*scale, o.Y*scale))
	}
	// замыкаем контур точно в первой точке
	return append(points, points[0])
}

// ============================================================
// Appleseed D silhouettes
// ============================================================

var silhouettes = map[int][]models.Point{
	3: {
		{X: 15.083, Y: 13.12}, {X: 15.083, Y: -0.147}, {X: 14.277, Y: -2.508},
		{X: 13.149, Y: -4.115}, {X: 11.841, Y: -5.257}, {X: 10.557, Y: -6.064},
		{X: 8.689, Y: -6.811}, {X: 7.539, Y: -8.439}, {X: 7.076, Y: -9.978},
		{X: 6.104, Y: -11.577}, {X: 4.82, Y: -12.829}, {X: 3.43, Y: -13.788},
		{X: 1.757, Y: -14.386}, {X: 0.083, Y: -14.55}, {X: -1.59, Y: -14.386},
		{X: -3.263, Y: -13.788}, {X: -4.653, Y: -12.829}, {X: -5.938, Y: -11.577},
		{X: -6.909, Y: -9.978}, {X: -7.372, Y: -8.439}, {X: -8.522, Y: -6.811},
		{X: -10.39, Y: -6.064}, {X: -11.674, Y: -5.257}, {X: -12.982, Y: -4.115},
		{X: -14.11, Y: -2.508}, {X: -14.917, Y: -0.147}, {X: -14.917, Y: 13.12},
	},
	4: {
		{X: 11.66, Y: 5.51}, {X: 11.595, Y: 0.689}, {X: 11.1, Y: -1.084},
		{X: 9.832, Y: -2.441}, {X: 7.677, Y: -3.322}, {X: 5.821, Y: -4.709},
		{X: 4.715, Y: -6.497}, {X: 4.267, Y: -8.135}, {X: 3.669, Y: -9.41},
		{X: 2.534, Y: -10.553}, {X: 1.436, Y: -11.091}, {X: 0.083, Y: -11.323},
		{X: -1.269, Y: -11.091}, {X: -2.367, Y: -10.553}, {X: -3.502, Y: -9.41},
		{X: -4.1, Y: -8.135}, {X: -4.548, Y: -6.497}, {X: -5.654, Y: -4.709},
		{X: -7.51, Y: -3.322}, {X: -9.665, Y: -2.441}, {X: -10.933, Y: -1.084},
		{X: -11.428, Y: 0.689}, {X: -11.493, Y: 5.51},
	},
	5: {
		{X: 7.893, Y: 3.418}, {X: 7.893, Y: 1.147}, {X: 7.255, Y: 0.331},
		{X: 5.622, Y: -0.247}, {X: 4.187, Y: -1.124}, {X: 2.833, Y: -2.339},
		{X: 1.917, Y: -3.594}, {X: 1.219, Y: -5.048}, {X: 0.9, Y: -6.223},
		{X: 0.801, Y: -7.1}, {X: 0.521, Y: -7.558}, {X: 0.083, Y: -7.617},
		{X: -0.354, Y: -7.558}, {X: -0.634, Y: -7.1}, {X: -0.733, Y: -6.223},
		{X: -1.052, Y: -5.048}, {X: -1.75, Y: -3.594}, {X: -2.666, Y: -2.339},
		{X: -4.02, Y: -1.124}, {X: -5.455, Y: -0.247}, {X: -7.088, Y: 0.331},
		{X: -7.726, Y: 1.147}, {X: -7.726, Y: 3.418},
	},
}
