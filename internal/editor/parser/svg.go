package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"target-editor/internal/editor/models"
)

// ============================================================
// XML Structures
// ============================================================

var ErrNotSVG = errors.New("document root is not <svg>")

// shape хранит общий набор атрибутов всех поддерживаемых фигур.
type shape struct {
	ID     string `xml:"id,attr"`
	Kind   string `xml:"data-kind,attr"`
	Tags   string `xml:"data-tags,attr"`
	Fill   string `xml:"fill,attr"`
	Style  string `xml:"style,attr"`
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	CX     string `xml:"cx,attr"`
	CY     string `xml:"cy,attr"`
	R      string `xml:"r,attr"`
	RX     string `xml:"rx,attr"`
	RY     string `xml:"ry,attr"`
	Points string `xml:"points,attr"`
	D      string `xml:"d,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG читает фигуры в порядке документа, включая вложенные в <g>.
// Порядок важен: в SVG он задаёт порядок наложения.
func ParseSVG(r io.Reader) ([]models.SVGElement, error) {
	decoder := xml.NewDecoder(r)

	var elements []models.SVGElement
	rootSeen := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rootSeen {
			if start.Name.Local != "svg" {
				return nil, ErrNotSVG
			}
			rootSeen = true
			continue
		}

		switch start.Name.Local {
		case "rect", "circle", "ellipse", "polygon", "path":
		default:
			continue
		}

		var s shape
		if err := decoder.DecodeElement(&s, &start); err != nil {
			return nil, fmt.Errorf("decode <%s>: %w", start.Name.Local, err)
		}

		elem, err := toElement(start.Name.Local, s)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", s.ID, err)
		}
		elements = append(elements, elem)
	}

	if !rootSeen {
		return nil, ErrNotSVG
	}
	return elements, nil
}

func toElement(tag string, s shape) (models.SVGElement, error) {
	elem := models.SVGElement{
		Tag:  tag,
		ID:   s.ID,
		Kind: strings.TrimSpace(s.Kind),
		Tags: splitTags(s.Tags),
		Fill: fillOf(s),
	}

	switch tag {
	case "rect":
		elem.Geometry = models.RectGeometry{
			X:      parseLength(s.X),
			Y:      parseLength(s.Y),
			Width:  parseLength(s.Width),
			Height: parseLength(s.Height),
		}
	case "circle":
		r := parseLength(s.R)
		elem.Geometry = models.EllipseGeometry{CX: parseLength(s.CX), CY: parseLength(s.CY), RX: r, RY: r}
	case "ellipse":
		elem.Geometry = models.EllipseGeometry{
			CX: parseLength(s.CX),
			CY: parseLength(s.CY),
			RX: parseLength(s.RX),
			RY: parseLength(s.RY),
		}
	case "polygon":
		points, err := ParsePoints(s.Points)
		if err != nil {
			return elem, err
		}
		elem.Geometry = models.PolyGeometry{Points: points, Closed: true}
	case "path":
		geom, err := ParsePath(s.D)
		if err != nil {
			return elem, err
		}
		elem.Geometry = geom
	}
	return elem, nil
}

// fillOf берёт заливку из style, иначе из атрибута fill.
func fillOf(s shape) string {
	for _, decl := range strings.Split(s.Style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == "fill" {
			return strings.ToLower(strings.TrimSpace(value))
		}
	}
	return strings.ToLower(strings.TrimSpace(s.Fill))
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
