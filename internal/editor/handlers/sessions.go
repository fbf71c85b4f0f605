package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"target-editor/internal/editor/models"
	"target-editor/internal/editor/render"
	"target-editor/internal/editor/service"
	"target-editor/internal/editor/session"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Session Handler
// ============================================================

type SessionHandler struct {
	sessions *session.Manager
	library  *service.Library
	canvas   render.Options
}

func NewSessionHandler(sessions *session.Manager, library *service.Library, canvas render.Options) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		library:  library,
		canvas:   canvas,
	}
}

type nameRequest struct {
	Name string `json:"name"`
}

type toolRequest struct {
	Tool string `json:"tool"`
}

type pointRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

// Create открывает пустую мишень.
func (h *SessionHandler) Create(c fiber.Ctx) error {
	var req nameRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badRequest(c, "invalid json")
		}
	}

	s := h.sessions.Create(req.Name)
	return c.Status(http.StatusCreated).JSON(s.Snapshot())
}

// Open загружает мишень из библиотеки по имени.
func (h *SessionHandler) Open(c fiber.Ctx) error {
	var req nameRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	if req.Name == "" {
		return badRequest(c, "name required")
	}

	s, err := h.library.Open(context.Background(), h.sessions, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(s.Snapshot())
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Snapshot())
}

func (h *SessionHandler) Close(c fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Editing events
// ============================================================

func (h *SessionHandler) SelectTool(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req toolRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	if err := s.SelectTool(session.Tool(req.Tool)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"tool": s.Tool()})
}

// Click обрабатывает левый клик по холсту.
func (h *SessionHandler) Click(c fiber.Ctx) error {
	s, p, err := h.sessionPoint(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := s.Click(p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"region":   id,
		"selected": s.Selected(),
		"tool":     s.Tool(),
	})
}

func (h *SessionHandler) Hover(c fiber.Ctx) error {
	s, p, err := h.sessionPoint(c)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Hover(p))
}

// Commit обрабатывает правый клик: завершение произвольного многоугольника.
func (h *SessionHandler) Commit(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	id, err := s.Commit()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"region": id})
}

func (h *SessionHandler) Undo(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"undone": s.Undo()})
}

func (h *SessionHandler) BringForward(c fiber.Ctx) error {
	return h.reorder(c, (*session.Session).BringForward)
}

func (h *SessionHandler) SendBackward(c fiber.Ctx) error {
	return h.reorder(c, (*session.Session).SendBackward)
}

func (h *SessionHandler) reorder(c fiber.Ctx, move func(*session.Session) (bool, error)) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	moved, err := move(s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"moved": moved})
}

// ============================================================
// Selection
// ============================================================

func (h *SessionHandler) DeleteSelection(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if err := s.Delete(); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *SessionHandler) SetColor(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req colorRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	if err := s.SetColor(req.Color); err != nil {
		return writeError(c, err)
	}
	return h.selection(c, s)
}

func (h *SessionHandler) SetTags(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req tagsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badRequest(c, "invalid json")
	}
	if err := s.SetTags(req.Tags); err != nil {
		return writeError(c, err)
	}
	return h.selection(c, s)
}

func (h *SessionHandler) selection(c fiber.Ctx, s *session.Session) error {
	r, err := s.Selection()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(session.RegionView{
		ID:       r.ID,
		Kind:     r.Kind,
		Geometry: r.Geometry,
		Fill:     r.Fill,
		Tags:     r.Tags.Values(),
	})
}

// ============================================================
// Save & export
// ============================================================

// Save сохраняет мишень в библиотеку. Заголовок X-Target-New сообщает о новом файле.
func (h *SessionHandler) Save(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	var req nameRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return badRequest(c, "invalid json")
		}
	}
	if req.Name == "" {
		req.Name = s.Name()
	}
	if req.Name == "" {
		return badRequest(c, "name required")
	}

	res, err := h.library.Save(context.Background(), s, req.Name)
	if err != nil {
		return writeError(c, err)
	}

	c.Set("X-Target-New", strconv.FormatBool(res.IsNew))
	status := http.StatusOK
	if res.IsNew {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(res)
}

func (h *SessionHandler) ExportSVG(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	opts, err := h.exportOptions(c, s)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf, opts); err != nil {
		return writeError(c, err)
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (h *SessionHandler) ExportPNG(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	opts, err := h.exportOptions(c, s)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := s.WritePNG(&buf, opts); err != nil {
		log.Printf("[EDITOR] PNG export failed for %s: %v", s.ID(), err)
		return writeError(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// exportOptions берёт размеры холста из ?width и ?height, не больше render.MaxSide.
func (h *SessionHandler) exportOptions(c fiber.Ctx, s *session.Session) (render.Options, error) {
	opts := h.canvas
	opts.Title = s.Name()

	for _, side := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		v, err := strconv.Atoi(c.Query(side.name))
		if err != nil || v <= 0 {
			continue
		}
		if v > render.MaxSide {
			return opts, fmt.Errorf("%w: %s must not exceed %d", errBadRequest, side.name, render.MaxSide)
		}
		*side.dst = v
	}
	return opts, nil
}

// sessionPoint находит сессию и разбирает {x, y} из тела запроса.
func (h *SessionHandler) sessionPoint(c fiber.Ctx) (*session.Session, models.Point, error) {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return nil, models.Point{}, err
	}

	var req pointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return nil, models.Point{}, fmt.Errorf("%w: invalid json", errBadRequest)
	}
	if req.X == nil || req.Y == nil {
		return nil, models.Point{}, fmt.Errorf("%w: x and y required", errBadRequest)
	}
	return s, models.Point{X: *req.X, Y: *req.Y}, nil
}
