package document

import (
	"fmt"

	"target-editor/internal/editor/freeform"
	"target-editor/internal/editor/models"
	"target-editor/internal/editor/shapes"
)

// ============================================================
// Target Document
// ============================================================

type Document struct {
	regions map[models.RegionID]*Region
	order   OrderList
	lastID  models.RegionID
	surface Surface
}

type Option func(*Document)

// WithSurface подключает поверхность отрисовки, которая будет зеркалить документ.
func WithSurface(s Surface) Option {
	return func(d *Document) {
		d.surface = s
	}
}

func New(opts ...Option) *Document {
	d := &Document{
		regions: make(map[models.RegionID]*Region),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach подключает поверхность и отрисовывает на ней все регионы снизу вверх.
func (d *Document) Attach(s Surface) {
	d.surface = s
	if s == nil {
		return
	}
	for _, id := range d.order.ids {
		s.Draw(d.regions[id].Clone())
	}
}

// ============================================================
// Creation
// ============================================================

// CreateRegion ставит фигуру из каталога в точку anchor с масштабом по умолчанию.
func (d *Document) CreateRegion(kind models.ShapeKind, anchor models.Point) (models.RegionID, error) {
	return d.CreateRegionScaled(kind, anchor, shapes.DefaultScale(kind))
}

func (d *Document) CreateRegionScaled(kind models.ShapeKind, anchor models.Point, scale float64) (models.RegionID, error) {
	geometry, err := shapes.Make(kind, anchor, scale)
	if err != nil {
		return models.Background, err
	}
	return d.insert(Region{
		Kind:     kind,
		Geometry: geometry,
		Fill:     models.DefaultColor,
		Tags:     NewTagSet(),
		Markers:  NewMarkers(kind.Marker()),
	}), nil
}

// CommitFreeform замыкает многоугольник построителя и добавляет его как регион.
func (d *Document) CommitFreeform(b *freeform.Builder) (models.RegionID, error) {
	geometry, err := b.Commit()
	if err != nil {
		return models.Background, err
	}
	return d.insert(Region{
		Kind:     models.FreeformPolygon,
		Geometry: geometry,
		Fill:     models.DefaultColor,
		Tags:     NewTagSet(),
		Markers:  NewMarkers(models.FreeformPolygon.Marker()),
	}), nil
}

// Restore добавляет готовый регион (из файла или импорта) поверх остальных.
// Идентификатор назначается заново.
func (d *Document) Restore(r Region) (models.RegionID, error) {
	if err := ValidateGeometry(r.Kind, r.Geometry); err != nil {
		return models.Background, err
	}
	if !r.Fill.Valid() {
		return models.Background, fmt.Errorf("%w: %q", ErrInvalidColor, r.Fill)
	}

	region := r.Clone()
	if region.Tags == nil {
		region.Tags = NewTagSet()
	}
	if region.Markers == nil {
		region.Markers = NewMarkers()
	}
	region.Markers[r.Kind.Marker()] = struct{}{}

	return d.insert(region), nil
}

func (d *Document) insert(r Region) models.RegionID {
	d.lastID++
	r.ID = d.lastID

	d.regions[r.ID] = &r
	// идентификаторы не повторяются, ошибки здесь быть не может
	_ = d.order.Append(r.ID)

	if d.surface != nil {
		d.surface.Draw(r.Clone())
	}
	return r.ID
}

// ============================================================
// Mutation
// ============================================================

func (d *Document) DeleteRegion(id models.RegionID) error {
	if _, err := d.lookup(id); err != nil {
		return err
	}
	if err := d.order.Remove(id); err != nil {
		return err
	}
	delete(d.regions, id)

	if d.surface != nil {
		d.surface.Erase(id)
	}
	return nil
}

// SetFillColor меняет заливку. Фон и отсутствующие регионы отклоняются раньше проверки цвета.
func (d *Document) SetFillColor(id models.RegionID, color string) error {
	r, err := d.lookup(id)
	if err != nil {
		return err
	}
	c, err := models.ParseColor(color)
	if err != nil {
		return err
	}

	r.Fill = c
	if d.surface != nil {
		d.surface.Draw(r.Clone())
	}
	return nil
}

// ReplaceUserTags заменяет пользовательские теги; служебные метки не трогаются.
func (d *Document) ReplaceUserTags(id models.RegionID, tags []string) error {
	r, err := d.lookup(id)
	if err != nil {
		return err
	}
	r.Tags.Replace(tags)
	if d.surface != nil {
		d.surface.Draw(r.Clone())
	}
	return nil
}

// BringForward поднимает регион на одну позицию.
func (d *Document) BringForward(id models.RegionID) (bool, error) {
	if _, err := d.lookup(id); err != nil {
		return false, err
	}
	above, _ := d.order.Above(id)

	moved, err := d.order.BringForward(id)
	if err != nil || !moved {
		return moved, err
	}
	if d.surface != nil {
		d.surface.Raise(id, above)
	}
	return true, nil
}

// SendBackward опускает регион на одну позицию, но не ниже фона.
func (d *Document) SendBackward(id models.RegionID) (bool, error) {
	if _, err := d.lookup(id); err != nil {
		return false, err
	}
	below, _ := d.order.Below(id)

	moved, err := d.order.SendBackward(id)
	if err != nil || !moved {
		return moved, err
	}
	if d.surface != nil {
		d.surface.Lower(id, below)
	}
	return true, nil
}

// ============================================================
// Queries
// ============================================================

func (d *Document) Region(id models.RegionID) (Region, error) {
	r, err := d.lookup(id)
	if err != nil {
		return Region{}, err
	}
	return r.Clone(), nil
}

// Regions возвращает копии регионов в порядке отрисовки (снизу вверх).
func (d *Document) Regions() []Region {
	out := make([]Region, 0, d.order.Len())
	for _, id := range d.order.ids {
		out = append(out, d.regions[id].Clone())
	}
	return out
}

func (d *Document) Order() []models.RegionID {
	return d.order.IDs()
}

func (d *Document) Len() int {
	return d.order.Len()
}

func (d *Document) FillColor(id models.RegionID) (models.Color, error) {
	r, err := d.lookup(id)
	if err != nil {
		return "", err
	}
	return r.Fill, nil
}

func (d *Document) Tags(id models.RegionID) ([]string, error) {
	r, err := d.lookup(id)
	if err != nil {
		return nil, err
	}
	return r.Tags.Values(), nil
}

func (d *Document) HasInternalMarker(id models.RegionID, marker string) (bool, error) {
	r, err := d.lookup(id)
	if err != nil {
		return false, err
	}
	return r.Markers.Has(marker), nil
}

// RegionAt спрашивает у поверхности, какой регион лежит под точкой.
// Без поверхности попадание всегда приходится на фон.
func (d *Document) RegionAt(p models.Point) models.RegionID {
	if d.surface == nil {
		return models.Background
	}
	id := d.surface.RegionAt(p)
	if _, ok := d.regions[id]; !ok {
		return models.Background
	}
	return id
}

func (d *Document) lookup(id models.RegionID) (*Region, error) {
	if id == models.Background {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchRegion, id)
	}
	r, ok := d.regions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchRegion, id)
	}
	return r, nil
}
