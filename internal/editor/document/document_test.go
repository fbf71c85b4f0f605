package document

import (
	"errors"
	"reflect"
	"testing"

	"target-editor/internal/editor/freeform"
	"target-editor/internal/editor/models"
)

// stackSurface повторяет порядок документа так же, как холст.
type stackSurface struct {
	stack []models.RegionID
	fills map[models.RegionID]models.Color
	tags  map[models.RegionID][]string
	hit   models.RegionID
}

func newStackSurface() *stackSurface {
	return &stackSurface{
		fills: make(map[models.RegionID]models.Color),
		tags:  make(map[models.RegionID][]string),
	}
}

func (s *stackSurface) index(id models.RegionID) int {
	for i, existing := range s.stack {
		if existing == id {
			return i
		}
	}
	return -1
}

func (s *stackSurface) Draw(r Region) {
	if s.index(r.ID) < 0 {
		s.stack = append(s.stack, r.ID)
	}
	s.fills[r.ID] = r.Fill
	s.tags[r.ID] = r.Tags.Values()
}

func (s *stackSurface) unstack(id models.RegionID) {
	if i := s.index(id); i >= 0 {
		s.stack = append(s.stack[:i], s.stack[i+1:]...)
	}
}

func (s *stackSurface) Erase(id models.RegionID) {
	s.unstack(id)
	delete(s.fills, id)
	delete(s.tags, id)
}

func (s *stackSurface) move(id, ref models.RegionID, after bool) {
	s.unstack(id)
	i := s.index(ref)
	if after {
		i++
	}
	s.stack = append(s.stack[:i], append([]models.RegionID{id}, s.stack[i:]...)...)
}

func (s *stackSurface) Raise(id, above models.RegionID) { s.move(id, above, true) }
func (s *stackSurface) Lower(id, below models.RegionID) { s.move(id, below, false) }

func (s *stackSurface) RegionAt(models.Point) models.RegionID { return s.hit }

func mustCreate(t *testing.T, d *Document, kind models.ShapeKind) models.RegionID {
	t.Helper()
	id, err := d.CreateRegion(kind, models.Point{X: 100, Y: 100})
	if err != nil {
		t.Fatalf("create %s: %v", kind, err)
	}
	return id
}

func TestDocument_CreateReorderDelete(t *testing.T) {
	surface := newStackSurface()
	d := New(WithSurface(surface))

	rect := mustCreate(t, d, models.Rectangle)
	oval := mustCreate(t, d, models.Oval)

	if got := d.Order(); !reflect.DeepEqual(got, []models.RegionID{rect, oval}) {
		t.Fatalf("expected [rect oval], got %v", got)
	}

	moved, err := d.BringForward(rect)
	if err != nil || !moved {
		t.Fatalf("bring forward: moved=%v err=%v", moved, err)
	}
	if got := d.Order(); !reflect.DeepEqual(got, []models.RegionID{oval, rect}) {
		t.Fatalf("expected [oval rect], got %v", got)
	}

	if err := d.DeleteRegion(oval); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := d.Order(); !reflect.DeepEqual(got, []models.RegionID{rect}) {
		t.Fatalf("expected [rect], got %v", got)
	}
	if !reflect.DeepEqual(surface.stack, d.Order()) {
		t.Errorf("surface stack %v diverged from order %v", surface.stack, d.Order())
	}
}

func TestDocument_DefaultsAndMarkers(t *testing.T) {
	d := New()
	id := mustCreate(t, d, models.Silhouette4)

	r, err := d.Region(id)
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	if r.Fill != models.ColorBlack {
		t.Errorf("expected default fill black, got %s", r.Fill)
	}
	if has, _ := d.HasInternalMarker(id, models.Silhouette4.Marker()); !has {
		t.Error("expected shape marker")
	}
	if len(r.Tags) != 0 {
		t.Errorf("expected no user tags, got %v", r.Tags.Values())
	}
}

func TestDocument_IDsNeverReused(t *testing.T) {
	d := New()
	first := mustCreate(t, d, models.Rectangle)
	if err := d.DeleteRegion(first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second := mustCreate(t, d, models.Rectangle)
	if second == first {
		t.Errorf("id %s reused after deletion", first)
	}
}

func TestDocument_SetFillColor(t *testing.T) {
	d := New()
	id := mustCreate(t, d, models.Triangle)

	if err := d.SetFillColor(id, "purple"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if err := d.SetFillColor(id, "red"); err != nil {
		t.Fatalf("set red: %v", err)
	}
	if c, _ := d.FillColor(id); c != models.ColorRed {
		t.Errorf("expected red, got %s", c)
	}
}

func TestDocument_BackgroundRejected(t *testing.T) {
	d := New()
	mustCreate(t, d, models.Rectangle)

	tests := []struct {
		name string
		op   func(models.RegionID) error
	}{
		{"delete", d.DeleteRegion},
		{"color", func(id models.RegionID) error { return d.SetFillColor(id, "red") }},
		{"invalid color", func(id models.RegionID) error { return d.SetFillColor(id, "purple") }},
		{"tags", func(id models.RegionID) error { return d.ReplaceUserTags(id, []string{"a"}) }},
		{"forward", func(id models.RegionID) error { _, err := d.BringForward(id); return err }},
		{"backward", func(id models.RegionID) error { _, err := d.SendBackward(id); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, id := range []models.RegionID{models.Background, 999} {
				if err := tt.op(id); !errors.Is(err, ErrNoSuchRegion) {
					t.Errorf("%s: expected ErrNoSuchRegion, got %v", id, err)
				}
			}
		})
	}

	if d.Len() != 1 {
		t.Errorf("rejected operations must not change the document, len %d", d.Len())
	}
}

func TestDocument_ReorderExtremesAreNoOps(t *testing.T) {
	d := New()
	bottom := mustCreate(t, d, models.Rectangle)
	top := mustCreate(t, d, models.Oval)
	before := d.Order()

	if moved, err := d.SendBackward(bottom); err != nil || moved {
		t.Errorf("send backward bottom: moved=%v err=%v", moved, err)
	}
	if moved, err := d.BringForward(top); err != nil || moved {
		t.Errorf("bring forward top: moved=%v err=%v", moved, err)
	}
	if !reflect.DeepEqual(before, d.Order()) {
		t.Errorf("order changed: %v -> %v", before, d.Order())
	}
}

func TestDocument_ReplaceUserTagsKeepsMarkers(t *testing.T) {
	d := New()
	id := mustCreate(t, d, models.Oval)

	if err := d.ReplaceUserTags(id, []string{"points:5", " zone ", "", "_shape:rectangle"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	first, _ := d.Tags(id)

	if err := d.ReplaceUserTags(id, []string{"points:5", " zone ", "", "_shape:rectangle"}); err != nil {
		t.Fatalf("replace again: %v", err)
	}
	second, _ := d.Tags(id)

	want := []string{"points:5", "zone"}
	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
		t.Errorf("expected %v twice, got %v and %v", want, first, second)
	}

	r, _ := d.Region(id)
	if !reflect.DeepEqual(r.Markers.Values(), []string{models.Oval.Marker()}) {
		t.Errorf("markers changed: %v", r.Markers.Values())
	}

	if err := d.ReplaceUserTags(id, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tags, _ := d.Tags(id); len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
	if has, _ := d.HasInternalMarker(id, models.Oval.Marker()); !has {
		t.Error("clearing user tags removed the shape marker")
	}
}

func TestDocument_CommitFreeform(t *testing.T) {
	d := New()
	b := freeform.NewBuilder()

	b.AddVertex(models.Point{X: 0, Y: 0})
	b.AddVertex(models.Point{X: 10, Y: 0})
	if _, err := d.CommitFreeform(b); !errors.Is(err, ErrInsufficientVertices) {
		t.Fatalf("expected ErrInsufficientVertices, got %v", err)
	}
	if d.Len() != 0 {
		t.Fatal("failed commit must not add a region")
	}

	b.AddVertex(models.Point{X: 10, Y: 10})
	b.AddVertex(models.Point{X: 1, Y: 9})

	id, err := d.CommitFreeform(b)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	r, _ := d.Region(id)
	if r.Kind != models.FreeformPolygon {
		t.Errorf("expected freeform kind, got %s", r.Kind)
	}
	if r.Geometry[len(r.Geometry)-1] != r.Geometry[0] {
		t.Error("freeform region is not closed")
	}
	if has, _ := d.HasInternalMarker(id, models.FreeformPolygon.Marker()); !has {
		t.Error("expected freeform marker")
	}
	if b.State() != freeform.Empty {
		t.Error("builder must reset after commit")
	}
}

func TestDocument_Restore(t *testing.T) {
	d := New()

	_, err := d.Restore(Region{
		Kind:     models.Triangle,
		Geometry: []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}},
		Fill:     models.ColorBlue,
	})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for short polygon, got %v", err)
	}

	_, err = d.Restore(Region{
		Kind:     models.Rectangle,
		Geometry: []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Fill:     "purple",
	})
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}

	id, err := d.Restore(Region{
		ID:       42,
		Kind:     models.Rectangle,
		Geometry: []models.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Fill:     models.ColorWhite,
		Tags:     NewTagSet("a"),
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if id == 42 {
		t.Error("restore must assign a fresh id")
	}
	if has, _ := d.HasInternalMarker(id, models.Rectangle.Marker()); !has {
		t.Error("restore must add the shape marker")
	}
}

func TestDocument_RegionAtDelegatesToSurface(t *testing.T) {
	surface := newStackSurface()
	d := New()
	id := mustCreate(t, d, models.Rectangle)

	if got := d.RegionAt(models.Point{X: 100, Y: 100}); got != models.Background {
		t.Errorf("without surface expected background, got %s", got)
	}

	d.Attach(surface)
	if !reflect.DeepEqual(surface.stack, []models.RegionID{id}) {
		t.Fatalf("attach must draw existing regions, got %v", surface.stack)
	}

	surface.hit = id
	if got := d.RegionAt(models.Point{}); got != id {
		t.Errorf("expected %s, got %s", id, got)
	}

	surface.hit = 77
	if got := d.RegionAt(models.Point{}); got != models.Background {
		t.Errorf("unknown surface hit must map to background, got %s", got)
	}
}

func TestDocument_SurfaceMirrorsColor(t *testing.T) {
	surface := newStackSurface()
	d := New(WithSurface(surface))
	id := mustCreate(t, d, models.Rectangle)

	if err := d.SetFillColor(id, "orange"); err != nil {
		t.Fatalf("set color: %v", err)
	}
	if surface.fills[id] != models.ColorOrange {
		t.Errorf("surface fill not updated: %s", surface.fills[id])
	}
}

func TestDocument_SurfaceMirrorsTags(t *testing.T) {
	surface := newStackSurface()
	d := New(WithSurface(surface))
	id := mustCreate(t, d, models.Rectangle)

	if err := d.ReplaceUserTags(id, []string{"head", "points:5"}); err != nil {
		t.Fatalf("replace tags: %v", err)
	}
	got := surface.tags[id]
	if len(got) != 2 || got[0] != "head" || got[1] != "points:5" {
		t.Errorf("expected surface tags [head points:5], got %v", got)
	}
}
