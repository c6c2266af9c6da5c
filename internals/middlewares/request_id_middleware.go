package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"github.com/sirupsen/logrus"
)

// RequestIDMiddleware tags the request, bounds its UserContext with timeout
// and logs one [REQ] line when it completes.
func RequestIDMiddleware(timeout time.Duration, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     c.Response().StatusCode(),
			"duration":   time.Since(start).String(),
		}).Debug("[REQ]")
		return err
	}
}
