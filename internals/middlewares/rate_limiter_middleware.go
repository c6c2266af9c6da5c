package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// limitPolicy is a per-IP sliding window. With failedOnly, responses below
// 400 do not consume the budget.
type limitPolicy struct {
	max        int
	window     time.Duration
	message    string
	failedOnly bool
	skip       func(*fiber.Ctx) bool
}

func ipLimiter(p limitPolicy) fiber.Handler {
	return limiter.New(limiter.Config{
		Next:                   p.skip,
		Max:                    p.max,
		Expiration:             p.window,
		LimiterMiddleware:      limiter.SlidingWindow{},
		SkipSuccessfulRequests: p.failedOnly,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(p.window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": p.message,
			})
		},
	})
}

// GlobalRateLimiter covers every endpoint except the probes.
func GlobalRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 300
	}
	return ipLimiter(limitPolicy{
		max:     perMinute,
		window:  time.Minute,
		message: "❌ Trop de requêtes. Réessayez plus tard.",
		skip: func(c *fiber.Ctx) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
	})
}

// LoginRateLimiter only counts rejected credentials.
func LoginRateLimiter() fiber.Handler {
	return ipLimiter(limitPolicy{
		max:        5,
		window:     time.Minute,
		message:    "❌ Trop de tentatives de connexion. Réessayez dans un instant.",
		failedOnly: true,
	})
}

func ForgotPasswordRateLimiter() fiber.Handler {
	return ipLimiter(limitPolicy{
		max:     3,
		window:  10 * time.Minute,
		message: "❌ Trop de demandes de réinitialisation. Réessayez dans 10 minutes.",
	})
}
