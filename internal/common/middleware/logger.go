package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger логирует запросы. В development пишутся адрес клиента и Content-Type.
func Logger(env string) fiber.Handler {
	format := "[HTTP] ${time} ${status} - ${latency} ${method} ${path}\n"
	if env == "development" {
		format = "[HTTP] ${time} ${status} - ${latency} ${method} ${path} | ${ip} | Content-Type: ${reqHeader:Content-Type}\n"
	}

	return logger.New(logger.Config{
		Format:     format,
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
