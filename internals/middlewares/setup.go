package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/sirupsen/logrus"

	"studiotrack_backend/internals/configs"
	accessLog "studiotrack_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain, outermost first.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, metrics *Metrics, log *logrus.Logger) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	app.Use(RequestIDMiddleware(timeout, log))
	app.Use(RecoveryMiddleware(log))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(GlobalRateLimiter(cfg.RateLimitPerMinute))
	if metrics != nil {
		app.Use(metrics.Middleware())
	}
	app.Use(accessLog.LoggerMiddleware(log.Out))
}
