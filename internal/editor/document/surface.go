package document

import "target-editor/internal/editor/models"

// Surface описывает поверхность отрисовки, которая повторяет порядок документа.
// Документ вызывает её после каждого изменения; сама она документ не меняет.
type Surface interface {
	// Draw создаёт или обновляет изображение региона поверх остальных, если его ещё нет.
	Draw(r Region)
	Erase(id models.RegionID)
	// Raise ставит id сразу над above.
	Raise(id, above models.RegionID)
	// Lower ставит id сразу под below.
	Lower(id, below models.RegionID)
	// RegionAt возвращает верхний регион под точкой или models.Background.
	RegionAt(p models.Point) models.RegionID
}
