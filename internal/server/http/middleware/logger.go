package middleware

import (
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// NewRequestLogger logs one line per request once the handler chain is done.
func NewRequestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"ip", c.IP(),
		}
		switch {
		case status >= 500:
			logger.Error(c.UserContext(), "request", args...)
		case status >= 400:
			logger.Warn(c.UserContext(), "request", args...)
		default:
			logger.Info(c.UserContext(), "request", args...)
		}
		return err
	}
}
