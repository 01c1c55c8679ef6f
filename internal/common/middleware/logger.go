package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger логирует запросы с именем сервиса в префиксе строки.
func Logger(service string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] [" + service + "] ${status} - ${latency} ${method} ${path} | ${bytesReceived}b in, ${bytesSent}b out\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
