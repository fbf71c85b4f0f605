package document

import (
	"fmt"

	"target-editor/internal/editor/models"
)

// ============================================================
// Region Order
// ============================================================

// OrderList хранит порядок отрисовки: индекс 0 соответствует самому нижнему регион.
// Фон в список не входит.
type OrderList struct {
	ids []models.RegionID
}

func (o *OrderList) Len() int {
	return len(o.ids)
}

func (o *OrderList) IDs() []models.RegionID {
	out := make([]models.RegionID, len(o.ids))
	copy(out, o.ids)
	return out
}

func (o *OrderList) Index(id models.RegionID) int {
	for i, existing := range o.ids {
		if existing == id {
			return i
		}
	}
	return -1
}

func (o *OrderList) Contains(id models.RegionID) bool {
	return o.Index(id) >= 0
}

// Append ставит регион поверх всех остальных.
func (o *OrderList) Append(id models.RegionID) error {
	if id == models.Background {
		return fmt.Errorf("%w: %s", ErrNoSuchRegion, id)
	}
	if o.Contains(id) {
		return fmt.Errorf("region %s already ordered", id)
	}
	o.ids = append(o.ids, id)
	return nil
}

func (o *OrderList) Remove(id models.RegionID) error {
	i, err := o.lookup(id)
	if err != nil {
		return err
	}
	o.ids = append(o.ids[:i], o.ids[i+1:]...)
	return nil
}

// Above возвращает регион сразу над id, если он есть.
func (o *OrderList) Above(id models.RegionID) (models.RegionID, bool) {
	i := o.Index(id)
	if i < 0 || i == len(o.ids)-1 {
		return models.Background, false
	}
	return o.ids[i+1], true
}

// Below возвращает регион сразу под id. Фон под нижним регионом соседом не считается.
func (o *OrderList) Below(id models.RegionID) (models.RegionID, bool) {
	i := o.Index(id)
	if i <= 0 {
		return models.Background, false
	}
	return o.ids[i-1], true
}

// BringForward меняет регион местами с соседом сверху. Верхний регион не двигается.
func (o *OrderList) BringForward(id models.RegionID) (bool, error) {
	i, err := o.lookup(id)
	if err != nil {
		return false, err
	}
	if i == len(o.ids)-1 {
		return false, nil
	}
	o.ids[i], o.ids[i+1] = o.ids[i+1], o.ids[i]
	return true, nil
}

// SendBackward меняет регион местами с соседом снизу. Нижний регион не двигается:
// "под ним ничего нет" и "под ним фон" считаются одним случаем.
func (o *OrderList) SendBackward(id models.RegionID) (bool, error) {
	i, err := o.lookup(id)
	if err != nil {
		return false, err
	}
	if i == 0 {
		return false, nil
	}
	o.ids[i], o.ids[i-1] = o.ids[i-1], o.ids[i]
	return true, nil
}

func (o *OrderList) lookup(id models.RegionID) (int, error) {
	if id == models.Background {
		return -1, fmt.Errorf("%w: %s", ErrNoSuchRegion, id)
	}
	i := o.Index(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNoSuchRegion, id)
	}
	return i, nil
}
