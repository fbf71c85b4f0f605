package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"target-editor/internal/editor/models"
)

// ============================================================
// Path Parser
// ============================================================

var (
	ErrEmptyPath       = errors.New("empty path")
	ErrUnsupportedPath = errors.New("unsupported path command")
)

var pathCommand = regexp.MustCompile(`([MmLlHhVvZzCcSsQqTtAa])([^MmLlHhVvZzCcSsQqTtAa]*)`)

// ParsePath разбирает ломаную из команд M, L, H, V, Z (и их относительных форм).
// Кривые не поддерживаются: мишень состоит только из многоугольников.
func ParsePath(d string) (models.PolyGeometry, error) {
	var geom models.PolyGeometry

	d = strings.TrimSpace(d)
	if d == "" {
		return geom, ErrEmptyPath
	}

	var cur, start models.Point
	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		args := parseNumbers(match[2])
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			// лишние пары после M трактуются как L
			for i := 0; i+1 < len(args); i += 2 {
				next := models.Point{X: args[i], Y: args[i+1]}
				if relative {
					next = cur.Add(next.X, next.Y)
				}
				cur = next
				if strings.ToUpper(cmd) == "M" && i == 0 {
					start = cur
				}
				geom.Points = append(geom.Points, cur)
			}

		case "H":
			for _, x := range args {
				if relative {
					cur.X += x
				} else {
					cur.X = x
				}
				geom.Points = append(geom.Points, cur)
			}

		case "V":
			for _, y := range args {
				if relative {
					cur.Y += y
				} else {
					cur.Y = y
				}
				geom.Points = append(geom.Points, cur)
			}

		case "Z":
			if len(geom.Points) > 0 {
				if geom.Points[len(geom.Points)-1] != start {
					geom.Points = append(geom.Points, start)
				}
				geom.Closed = true
			}
			cur = start

		default:
			return geom, fmt.Errorf("%w: %s", ErrUnsupportedPath, cmd)
		}
	}

	if len(geom.Points) == 0 {
		return geom, ErrEmptyPath
	}
	return geom, nil
}

// ParsePoints разбирает атрибут points элемента polygon.
func ParsePoints(s string) ([]models.Point, error) {
	nums := parseNumbers(s)
	if len(nums)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in %q", s)
	}

	points := make([]models.Point, 0, len(nums)/2)
	for i := 0; i < len(nums); i += 2 {
		points = append(points, models.Point{X: nums[i], Y: nums[i+1]})
	}
	return points, nil
}

func parseNumbers(s string) []float64 {
	// Разделитель: запятая или пробел
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	var nums []float64
	for _, part := range parts {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			nums = append(nums, val)
		}
	}
	return nums
}

// parseLength читает длину SVG, отбрасывая единицу px.
func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}
