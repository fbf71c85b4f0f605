package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"target-editor/internal/editor/document"
	"target-editor/internal/editor/models"
)

// ============================================================
// Target File Format
// ============================================================

const (
	FormatTag      = "shootoff-target"
	CurrentVersion = 1
	Extension      = ".target"
)

var (
	ErrCorruptFile        = errors.New("corrupt target file")
	ErrUnsupportedVersion = errors.New("unsupported target file version")
)

type fileHeader struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
}

type targetFile struct {
	Format  string         `json:"format"`
	Version int            `json:"version"`
	Regions []regionRecord `json:"regions"`
}

type regionRecord struct {
	Kind    models.ShapeKind `json:"kind"`
	Points  []models.Point   `json:"points"`
	Fill    models.Color     `json:"fill"`
	Tags    []string         `json:"tags"`
	Markers []string         `json:"markers"`
}

// ============================================================
// Encoding
// ============================================================

// Marshal сериализует документ в порядке отрисовки (снизу вверх).
func Marshal(doc *document.Document) ([]byte, error) {
	file := targetFile{
		Format:  FormatTag,
		Version: CurrentVersion,
		Regions: make([]regionRecord, 0, doc.Len()),
	}

	for _, r := range doc.Regions() {
		file.Regions = append(file.Regions, regionRecord{
			Kind:    r.Kind,
			Points:  r.Geometry,
			Fill:    r.Fill,
			Tags:    r.Tags.Values(),
			Markers: r.Markers.Values(),
		})
	}

	return json.MarshalIndent(file, "", "  ")
}

func Encode(w io.Writer, doc *document.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveFile записывает документ целиком или не записывает ничего:
// данные готовятся в памяти, пишутся во временный файл рядом с целевым
// и только потом переименовываются поверх него.
func SaveFile(path string, doc *document.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode target: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir target dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace target file: %w", err)
	}
	return nil
}

// ============================================================
// Decoding
// ============================================================

// Unmarshal восстанавливает документ. Идентификаторы регионов назначаются заново.
func Unmarshal(data []byte, opts ...document.Option) (*document.Document, error) {
	var header fileHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	if header.Format != FormatTag {
		return nil, fmt.Errorf("%w: unexpected format %q", ErrCorruptFile, header.Format)
	}
	if header.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}

	var file targetFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	doc := document.New(opts...)
	for i, rec := range file.Regions {
		if _, err := doc.Restore(rec.region()); err != nil {
			return nil, fmt.Errorf("%w: region %d: %v", ErrCorruptFile, i, err)
		}
	}
	return doc, nil
}

func Decode(r io.Reader, opts ...document.Option) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	return Unmarshal(data, opts...)
}

// LoadFile читает документ с диска. Ошибки ввода-вывода возвращаются как есть,
// ошибки формата возвращаются как ErrCorruptFile или ErrUnsupportedVersion.
func LoadFile(path string, opts ...document.Option) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	return Unmarshal(data, opts...)
}

func (rec regionRecord) region() document.Region {
	return document.Region{
		Kind:     rec.Kind,
		Geometry: rec.Points,
		Fill:     rec.Fill,
		Tags:     document.NewTagSet(rec.Tags...),
		Markers:  document.NewMarkers(rec.Markers...),
	}
}
