package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Register подключает маршруты редактора к приложению.
func Register(app fiber.Router, health *HealthHandler, sessions *SessionHandler, library *LibraryHandler) {
	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe)
	app.Get("/health/startup", health.StartupProbe)

	app.Get("/docs", APIDocs)
	app.Get("/docs/openapi.yaml", APISpec)

	// ============================================================
	// Session Routes
	// ============================================================

	app.Post("/sessions", sessions.Create)
	app.Post("/sessions/open", sessions.Open)
	app.Get("/sessions/:id", sessions.Get)
	app.Delete("/sessions/:id", sessions.Close)

	app.Post("/sessions/:id/tool", sessions.SelectTool)
	app.Post("/sessions/:id/click", sessions.Click)
	app.Post("/sessions/:id/hover", sessions.Hover)
	app.Post("/sessions/:id/commit", sessions.Commit)
	app.Post("/sessions/:id/undo", sessions.Undo)
	app.Post("/sessions/:id/forward", sessions.BringForward)
	app.Post("/sessions/:id/backward", sessions.SendBackward)
	app.Post("/sessions/:id/save", sessions.Save)

	app.Delete("/sessions/:id/selection", sessions.DeleteSelection)
	app.Put("/sessions/:id/selection/color", sessions.SetColor)
	app.Put("/sessions/:id/selection/tags", sessions.SetTags)

	app.Get("/sessions/:id/svg", sessions.ExportSVG)
	app.Get("/sessions/:id/png", sessions.ExportPNG)

	// ============================================================
	// Library Routes
	// ============================================================

	app.Get("/targets", library.List)
	app.Post("/targets/import-svg", library.ImportSVG)
	app.Get("/targets/:name", library.Get)
	app.Delete("/targets/:name", library.Delete)
}
