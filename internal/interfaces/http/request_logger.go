package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// RequestLogger logs one line per request with method, path, status and latency.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("http request")
		return err
	}
}
