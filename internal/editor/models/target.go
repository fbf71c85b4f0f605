package models

// ============================================================
// Library Entry
// ============================================================

// TargetEntry описывает запись каталога мишеней: имя, файл и число регионов на момент сохранения.
type TargetEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Regions   int    `json:"regions"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
