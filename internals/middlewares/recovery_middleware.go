package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware turns a panic into a 500 handled by the app ErrorHandler.
func RecoveryMiddleware(log *logrus.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.WithFields(logrus.Fields{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": c.Locals("reqid"),
			}).Error(fmt.Sprintf("💥 panic: %v", e))
		},
	})
}
