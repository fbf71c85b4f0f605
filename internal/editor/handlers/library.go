package handlers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"target-editor/internal/editor/mapper"
	"target-editor/internal/editor/service"
	"target-editor/internal/editor/session"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Library Handler
// ============================================================

type LibraryHandler struct {
	library  *service.Library
	sessions *session.Manager
}

func NewLibraryHandler(library *service.Library, sessions *session.Manager) *LibraryHandler {
	return &LibraryHandler{library: library, sessions: sessions}
}

func (h *LibraryHandler) List(c fiber.Ctx) error {
	entries, err := h.library.List(context.Background())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

func (h *LibraryHandler) Get(c fiber.Ctx) error {
	entry, err := h.library.Get(context.Background(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entry)
}

func (h *LibraryHandler) Delete(c fiber.Ctx) error {
	if err := h.library.Delete(context.Background(), c.Params("name")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ImportSVG открывает SVG как новую сессию. Файл принимается из
// multipart/form-data (поле file) или телом запроса.
func (h *LibraryHandler) ImportSVG(c fiber.Ctx) error {
	log.Printf("[IMPORT] Received request, Content-Type: %s", c.Get("Content-Type"))

	data, name, err := readUpload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if len(data) == 0 {
		return badRequest(c, "svg required")
	}

	doc, report, err := mapper.NewImporter().Import(bytes.NewReader(data))
	if err != nil {
		log.Printf("[IMPORT] Import error: %v", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	s := h.sessions.Adopt(name, doc)
	log.Printf("[IMPORT] Session %s: %d imported, %d skipped", s.ID(), report.Imported, len(report.Skipped))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"session": s.Snapshot(),
		"report":  report,
	})
}

func readUpload(c fiber.Ctx) ([]byte, string, error) {
	if !strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		return c.Body(), c.Query("name"), nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	name := c.Query("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(fileHeader.Filename), filepath.Ext(fileHeader.Filename))
	}
	return data, name, nil
}
