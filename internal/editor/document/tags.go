package document

import (
	"sort"
	"strings"
)

// ============================================================
// Tag Sets
// ============================================================

// ReservedPrefix помечает служебные строки, которые пользователь не видит и не редактирует.
const ReservedPrefix = "_"

// TagSet хранит пользовательские теги региона.
type TagSet map[string]struct{}

func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	s.add(tags)
	return s
}

// Replace заменяет все пользовательские теги новым набором.
// Пустые строки и строки с зарезервированным префиксом отбрасываются.
func (s TagSet) Replace(tags []string) {
	for tag := range s {
		delete(s, tag)
	}
	s.add(tags)
}

func (s TagSet) add(tags []string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.HasPrefix(tag, ReservedPrefix) {
			continue
		}
		s[tag] = struct{}{}
	}
}

func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Values возвращает теги в отсортированном порядке.
func (s TagSet) Values() []string {
	return sortedKeys(s)
}

func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for tag := range s {
		out[tag] = struct{}{}
	}
	return out
}

// ============================================================
// Internal markers
// ============================================================

// Markers хранит служебные метки региона (например, вид фигуры).
// Выставляются при создании и не затрагиваются заменой тегов.
type Markers map[string]struct{}

func NewMarkers(markers ...string) Markers {
	m := make(Markers, len(markers))
	for _, marker := range markers {
		if marker = strings.TrimSpace(marker); marker != "" {
			m[marker] = struct{}{}
		}
	}
	return m
}

func (m Markers) Has(marker string) bool {
	_, ok := m[marker]
	return ok
}

func (m Markers) Values() []string {
	return sortedKeys(m)
}

func (m Markers) Clone() Markers {
	out := make(Markers, len(m))
	for marker := range m {
		out[marker] = struct{}{}
	}
	return out
}

func sortedKeys[M ~map[string]struct{}](m M) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
