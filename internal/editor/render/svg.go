package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"

	svg "github.com/ajstarks/svgo"
)

// ============================================================
// SVG export
// ============================================================

type Options struct {
	Width   int
	Height  int
	Title   string
	Opacity float64 // прозрачность заливки, как у штриховки в редакторе
}

// MaxSide ограничивает ширину и высоту холста экспорта.
const MaxSide = 4096

var ErrCanvasTooLarge = errors.New("canvas too large")

func DefaultOptions() Options {
	return Options{
		Width:   640,
		Height:  480,
		Opacity: 0.25,
	}
}

// SVG рисует регионы снизу вверх. Вид фигуры и теги сохраняются в data-атрибутах,
// чтобы файл можно было импортировать обратно.
func SVG(w io.Writer, regions []document.Region, opts Options) error {
	opts, err := opts.withSize(regions)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}

	for _, r := range regions {
		attrs := regionAttrs(r, opts)

		switch r.Kind {
		case models.Rectangle:
			minP, maxP := corners(r.Geometry)
			canvas.Rect(round(minP.X), round(minP.Y), round(maxP.X-minP.X), round(maxP.Y-minP.Y), attrs...)
		case models.Oval:
			minP, maxP := corners(r.Geometry)
			rx, ry := (maxP.X-minP.X)/2, (maxP.Y-minP.Y)/2
			canvas.Ellipse(round(minP.X+rx), round(minP.Y+ry), round(rx), round(ry), attrs...)
		default:
			xs, ys := polygonCoords(r.Geometry)
			canvas.Polygon(xs, ys, attrs...)
		}
	}

	canvas.End()
	_, err = w.Write(buf.Bytes())
	return err
}

func regionAttrs(r document.Region, opts Options) []string {
	attrs := []string{
		fmt.Sprintf(`id="%s"`, r.ID),
		fmt.Sprintf(`data-kind="%s"`, r.Kind),
	}
	if tags := r.Tags.Values(); len(tags) > 0 {
		attrs = append(attrs, fmt.Sprintf(`data-tags="%s"`, html.EscapeString(strings.Join(tags, ","))))
	}
	attrs = append(attrs, fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:black;stroke-width:1",
		r.Fill, formatFloat(opts.Opacity)))
	return attrs
}

// polygonCoords отбрасывает замыкающую точку: SVG замыкает polygon сам.
func polygonCoords(points []models.Point) ([]int, []int) {
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = round(p.X)
		ys[i] = round(p.Y)
	}
	return xs, ys
}

// ============================================================
// Sizing helpers
// ============================================================

// Bounds возвращает габариты всех регионов.
func Bounds(regions []document.Region) (models.Point, models.Point, bool) {
	minP := models.Point{X: math.MaxFloat64, Y: math.MaxFloat64}
	maxP := models.Point{X: -math.MaxFloat64, Y: -math.MaxFloat64}
	found := false

	for _, r := range regions {
		for _, p := range r.Geometry {
			minP.X = math.Min(minP.X, p.X)
			minP.Y = math.Min(minP.Y, p.Y)
			maxP.X = math.Max(maxP.X, p.X)
			maxP.Y = math.Max(maxP.Y, p.Y)
			found = true
		}
	}
	return minP, maxP, found
}

// withSize дополняет размеры холста. Явные размеры больше MaxSide отклоняются,
// размеры по границам регионов обрезаются до MaxSide.
func (o Options) withSize(regions []document.Region) (Options, error) {
	def := DefaultOptions()
	if o.Opacity <= 0 || o.Opacity > 1 {
		o.Opacity = def.Opacity
	}
	if o.Width > MaxSide || o.Height > MaxSide {
		return o, fmt.Errorf("%w: %dx%d exceeds %d", ErrCanvasTooLarge, o.Width, o.Height, MaxSide)
	}
	if o.Width > 0 && o.Height > 0 {
		return o, nil
	}

	o.Width, o.Height = def.Width, def.Height
	if _, maxP, ok := Bounds(regions); ok {
		o.Width = fitSide(o.Width, maxP.X)
		o.Height = fitSide(o.Height, maxP.Y)
	}
	return o, nil
}

func fitSide(side int, edge float64) int {
	if edge >= MaxSide {
		return MaxSide
	}
	return min(max(side, int(math.Ceil(edge))+1), MaxSide)
}

func round(v float64) int {
	return int(math.Round(v))
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
