package shapes

import (
	"errors"
	"math"
	"testing"

	"target-editor/internal/editor/models"
)

func TestMake_Boxes(t *testing.T) {
	anchor := models.Point{X: 100, Y: 100}

	for _, kind := range []models.ShapeKind{models.Rectangle, models.Oval} {
		t.Run(string(kind), func(t *testing.T) {
			pts, err := MakeDefault(kind, anchor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := []models.Point{{X: 70, Y: 70}, {X: 130, Y: 130}}
			if len(pts) != len(want) {
				t.Fatalf("expected %d points, got %d", len(want), len(pts))
			}
			for i := range want {
				if pts[i] != want[i] {
					t.Errorf("point %d: expected %v, got %v", i, want[i], pts[i])
				}
			}
		})
	}
}

func TestMake_Triangle(t *testing.T) {
	pts, err := MakeDefault(models.Triangle, models.Point{X: 50, Y: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.Point{{X: 50, Y: 10}, {X: 80, Y: 70}, {X: 20, Y: 70}, {X: 50, Y: 10}}
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], pts[i])
		}
	}
}

func TestMake_Silhouettes(t *testing.T) {
	tests := []struct {
		kind   models.ShapeKind
		points int
		first  models.Point
	}{
		{models.Silhouette3, 28, models.Point{X: 15.083, Y: 13.12}},
		{models.Silhouette4, 24, models.Point{X: 11.66, Y: 5.51}},
		{models.Silhouette5, 24, models.Point{X: 7.893, Y: 3.418}},
	}

	anchor := models.Point{X: 200, Y: 300}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			pts, err := MakeDefault(tt.kind, anchor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(pts) != tt.points {
				t.Fatalf("expected %d points, got %d", tt.points, len(pts))
			}
			if pts[0] != pts[len(pts)-1] {
				t.Errorf("polygon not closed: first %v, last %v", pts[0], pts[len(pts)-1])
			}

			wantX := anchor.X + tt.first.X*SilhouetteScale
			wantY := anchor.Y + tt.first.Y*SilhouetteScale
			if math.Abs(pts[0].X-wantX) > 1e-9 || math.Abs(pts[0].Y-wantY) > 1e-9 {
				t.Errorf("first point: expected (%v, %v), got %v", wantX, wantY, pts[0])
			}
		})
	}
}

func TestMake_CustomScale(t *testing.T) {
	pts, err := Make(models.Silhouette5, models.Point{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pts[11] != (models.Point{X: 0.083, Y: -7.617}) {
		t.Errorf("expected unscaled head point, got %v", pts[11])
	}
}

func TestMake_Unsupported(t *testing.T) {
	for _, kind := range []models.ShapeKind{models.FreeformPolygon, "hexagon"} {
		if _, err := MakeDefault(kind, models.Point{}); !errors.Is(err, ErrUnsupportedKind) {
			t.Errorf("%s: expected ErrUnsupportedKind, got %v", kind, err)
		}
	}
}

func TestDefaultScale(t *testing.T) {
	if s := DefaultScale(models.Rectangle); s != InitialSize {
		t.Errorf("rectangle: expected %v, got %v", InitialSize, s)
	}
	if s := DefaultScale(models.Silhouette4); s != SilhouetteScale {
		t.Errorf("aqt4: expected %v, got %v", SilhouetteScale, s)
	}
}

func TestVertexMarker(t *testing.T) {
	pts := VertexMarker(models.Point{X: 10, Y: 10})
	if pts[0] != (models.Point{X: 8, Y: 8}) || pts[1] != (models.Point{X: 12, Y: 12}) {
		t.Errorf("unexpected vertex marker %v", pts)
	}
}
