package handlers

import (
	"errors"
	"io/fs"
	"log"
	"net/http"

	"target-editor/internal/editor/codec"
	"target-editor/internal/editor/document"
	"target-editor/internal/editor/render"
	"target-editor/internal/editor/repository"
	"target-editor/internal/editor/service"
	"target-editor/internal/editor/session"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Error Mapping
// ============================================================

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, document.ErrNoSuchRegion),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, document.ErrInvalidColor),
		errors.Is(err, document.ErrInsufficientVertices),
		errors.Is(err, codec.ErrCorruptFile),
		errors.Is(err, codec.ErrUnsupportedVersion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, session.ErrUnknownTool),
		errors.Is(err, render.ErrCanvasTooLarge),
		errors.Is(err, service.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("[EDITOR] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
