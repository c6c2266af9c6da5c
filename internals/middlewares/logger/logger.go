package logger

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware writes one access line per request to out (stdout when
// nil). Probe endpoints are not logged.
func LoggerMiddleware(out io.Writer) fiber.Handler {
	if out == nil {
		out = os.Stdout
	}
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		Output:     out,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${locals:reqid} ${ip} ${locals:userRole} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
