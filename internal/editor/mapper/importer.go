package mapper

import (
	"fmt"
	"io"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"
	"target-editor/internal/editor/parser"
)

// ============================================================
// SVG Importer
// ============================================================

// Report описывает, что удалось перенести из SVG.
type Report struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

type Importer struct {
	fallback models.Color
}

func NewImporter() *Importer {
	return &Importer{fallback: models.DefaultColor}
}

// Import SVG → документ мишени. Фигуры добавляются в порядке документа SVG,
// поэтому первая оказывается внизу.
func (im *Importer) Import(r io.Reader, opts ...document.Option) (*document.Document, Report, error) {
	report := Report{Skipped: []string{}}

	elements, err := parser.ParseSVG(r)
	if err != nil {
		return nil, report, fmt.Errorf("parse SVG: %w", err)
	}

	doc := document.New(opts...)
	for i, elem := range elements {
		region, ok := im.toRegion(elem)
		if !ok {
			report.Skipped = append(report.Skipped, elementName(i, elem))
			continue
		}
		if _, err := doc.Restore(region); err != nil {
			report.Skipped = append(report.Skipped, elementName(i, elem))
			continue
		}
		report.Imported++
	}
	return doc, report, nil
}

func (im *Importer) toRegion(elem models.SVGElement) (document.Region, bool) {
	region := document.Region{
		Fill: im.fill(elem.Fill),
		Tags: document.NewTagSet(elem.Tags...),
	}

	declared := models.ShapeKind(elem.Kind)

	switch geom := elem.Geometry.(type) {
	case models.RectGeometry:
		if geom.Width <= 0 || geom.Height <= 0 {
			return region, false
		}
		region.Kind = models.Rectangle
		region.Geometry = []models.Point{
			{X: geom.X, Y: geom.Y},
			{X: geom.X + geom.Width, Y: geom.Y + geom.Height},
		}

	case models.EllipseGeometry:
		if geom.RX <= 0 || geom.RY <= 0 {
			return region, false
		}
		region.Kind = models.Oval
		region.Geometry = []models.Point{
			{X: geom.CX - geom.RX, Y: geom.CY - geom.RY},
			{X: geom.CX + geom.RX, Y: geom.CY + geom.RY},
		}

	case models.PolyGeometry:
		points := closeRing(geom.Points)
		// треугольник — минимальный многоугольник: 3 угла + замыкающая точка
		if len(points) < 4 {
			return region, false
		}
		region.Kind = models.FreeformPolygon
		if declared.Valid() && !declared.IsBox() {
			region.Kind = declared
		}
		region.Geometry = points

	default:
		return region, false
	}

	return region, true
}

// fill сопоставляет цвет SVG с палитрой; неизвестные цвета заменяются чёрным.
func (im *Importer) fill(value string) models.Color {
	c, err := models.ParseColor(value)
	if err != nil {
		return im.fallback
	}
	return c
}

// ============================================================
// Geometry helpers
// ============================================================

// closeRing убирает подряд идущие дубли и замыкает контур на первую точку.
func closeRing(points []models.Point) []models.Point {
	out := make([]models.Point, 0, len(points)+1)
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return out
	}
	return append(out, out[0])
}

func elementName(i int, elem models.SVGElement) string {
	if elem.ID != "" {
		return elem.ID
	}
	return fmt.Sprintf("%s#%d", elem.Tag, i)
}
