package document

import (
	"errors"
	"fmt"

	"target-editor/internal/editor/models"
)

// ============================================================
// Regions
// ============================================================

var ErrInvalidGeometry = errors.New("invalid region geometry")

type Region struct {
	ID       models.RegionID
	Kind     models.ShapeKind
	Geometry []models.Point
	Fill     models.Color
	Tags     TagSet
	Markers  Markers
}

// Clone возвращает независимую копию региона.
func (r Region) Clone() Region {
	out := r
	out.Geometry = make([]models.Point, len(r.Geometry))
	copy(out.Geometry, r.Geometry)
	out.Tags = r.Tags.Clone()
	out.Markers = r.Markers.Clone()
	return out
}

// ValidateGeometry проверяет инварианты геометрии для вида фигуры:
// у прямоугольника и овала ровно два угла, многоугольники замкнуты.
func ValidateGeometry(kind models.ShapeKind, points []models.Point) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidGeometry, kind)
	}
	if len(points) == 0 {
		return fmt.Errorf("%w: empty geometry", ErrInvalidGeometry)
	}
	if kind.IsBox() {
		if len(points) != 2 {
			return fmt.Errorf("%w: %s needs 2 corners, got %d", ErrInvalidGeometry, kind, len(points))
		}
		return nil
	}
	if len(points) < 4 {
		return fmt.Errorf("%w: %s needs at least 4 points, got %d", ErrInvalidGeometry, kind, len(points))
	}
	if points[0] != points[len(points)-1] {
		return fmt.Errorf("%w: %s is not closed", ErrInvalidGeometry, kind)
	}
	return nil
}
