package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocRawToken     = "raw_token"
	AccessTokenName = "access_token"
)

// GetRawAccessToken returns the access token from:
// 1) Locals("raw_token") set by the auth middleware
// 2) cookie "access_token"
// 3) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(c.Cookies(AccessTokenName)); v != "" {
		return v
	}
	fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	return ""
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}
