package mapper

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"
	"target-editor/internal/editor/render"
)

type summary struct {
	Kind models.ShapeKind
	Fill models.Color
	Tags []string
}

func summarize(doc *document.Document) []summary {
	var out []summary
	for _, r := range doc.Regions() {
		out = append(out, summary{Kind: r.Kind, Fill: r.Fill, Tags: r.Tags.Values()})
	}
	return out
}

func TestImport_RoundTripThroughSVG(t *testing.T) {
	doc := document.New()
	for i, kind := range models.Kinds[:6] {
		id, err := doc.CreateRegion(kind, models.Point{X: float64(100 + 40*i), Y: 150})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		doc.SetFillColor(id, string(models.Palette[i]))
		doc.ReplaceUserTags(id, []string{"zone:" + string(kind), "points:5"})
	}
	order := doc.Order()
	doc.SendBackward(order[3])

	var buf bytes.Buffer
	if err := render.SVG(&buf, doc.Regions(), render.DefaultOptions()); err != nil {
		t.Fatalf("export: %v", err)
	}

	imported, report, err := NewImporter().Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Imported != doc.Len() || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !reflect.DeepEqual(summarize(doc), summarize(imported)) {
		t.Errorf("round trip mismatch:\nexported %+v\nimported %+v", summarize(doc), summarize(imported))
	}

	rect, _ := imported.Region(imported.Order()[0])
	want := []models.Point{{X: 70, Y: 120}, {X: 130, Y: 180}}
	if rect.Kind != models.Rectangle || !reflect.DeepEqual(rect.Geometry, want) {
		t.Errorf("expected rectangle %v, got %s %v", want, rect.Kind, rect.Geometry)
	}
	if ok, _ := imported.HasInternalMarker(rect.ID, models.Rectangle.Marker()); !ok {
		t.Error("imported region is missing its shape marker")
	}
}

func TestImport_ForeignSVG(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg">
  <path id="ring" d="M0 0 H40 V40 H0 Z" fill="#ff00ff" data-tags="_hidden,score"/>
  <polygon id="line" points="0,0 10,10"/>
  <rect id="flat" x="0" y="0" width="0" height="10"/>
  <ellipse id="oval" cx="50" cy="50" rx="10" ry="20" style="fill: orange"/>
  <polygon id="tri" points="0,0 10,0 5,8" data-kind="oval"/>
</svg>`

	doc, report, err := NewImporter().Import(strings.NewReader(src))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if want := []string{"line", "flat"}; !reflect.DeepEqual(report.Skipped, want) {
		t.Errorf("expected skipped %v, got %v", want, report.Skipped)
	}

	got := summarize(doc)
	want := []summary{
		{Kind: models.FreeformPolygon, Fill: models.ColorBlack, Tags: []string{"score"}},
		{Kind: models.Oval, Fill: models.ColorOrange, Tags: []string{}},
		{Kind: models.FreeformPolygon, Fill: models.ColorBlack, Tags: []string{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	ring, _ := doc.Region(doc.Order()[0])
	if n := len(ring.Geometry); n != 5 || ring.Geometry[0] != ring.Geometry[n-1] {
		t.Errorf("expected closed 4-corner ring, got %v", ring.Geometry)
	}
}

func TestImport_RejectsNonSVG(t *testing.T) {
	if _, _, err := NewImporter().Import(strings.NewReader(`{"format":"shootoff-target"}`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestCloseRing(t *testing.T) {
	in := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	want := []models.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	if got := closeRing(in); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
