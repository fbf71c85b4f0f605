package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	started time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// LivenessProbe проверяет, что приложение работает
func (h *HealthHandler) LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe проверяет, что каталог мишеней доступен
func (h *HealthHandler) ReadinessProbe(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Printf("[HEALTH] Library db not ready: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"error":  "library unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// StartupProbe проверяет, что приложение успешно запустилось
func (h *HealthHandler) StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
