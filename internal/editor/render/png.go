package render

import (
	"image/color"
	"io"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// ============================================================
// PNG export
// ============================================================

// PNG растеризует регионы снизу вверх на прозрачном фоне.
func PNG(w io.Writer, regions []document.Region, opts Options) error {
	opts, err := opts.withSize(regions)
	if err != nil {
		return err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetLineWidth(1)

	for _, r := range regions {
		switch r.Kind {
		case models.Rectangle:
			minP, maxP := corners(r.Geometry)
			dc.DrawRectangle(minP.X, minP.Y, maxP.X-minP.X, maxP.Y-minP.Y)
		case models.Oval:
			minP, maxP := corners(r.Geometry)
			rx, ry := (maxP.X-minP.X)/2, (maxP.Y-minP.Y)/2
			dc.DrawEllipse(minP.X+rx, minP.Y+ry, rx, ry)
		default:
			if len(r.Geometry) == 0 {
				continue
			}
			dc.MoveTo(r.Geometry[0].X, r.Geometry[0].Y)
			for _, p := range r.Geometry[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.ClosePath()
		}

		dc.SetColor(FillColor(r.Fill, opts.Opacity))
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.Stroke()
	}

	return dc.EncodePNG(w)
}

// FillColor переводит цвет палитры в RGBA с заданной прозрачностью.
func FillColor(c models.Color, opacity float64) color.NRGBA {
	rgba, ok := colornames.Map[string(c)]
	if !ok {
		rgba = colornames.Black
	}
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: uint8(opacity*255 + 0.5)}
}
