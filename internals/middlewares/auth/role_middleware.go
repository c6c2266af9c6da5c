package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "studiotrack_backend/internals/helpers"
)

// OnlyRoles lets the request through when the userRole local set by AuthJWT
// is one of roles. No role at all means the guard runs outside AuthJWT: 401.
func OnlyRoles(forbiddenMessage string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	if forbiddenMessage == "" {
		forbiddenMessage = "Accès refusé"
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocUserRole).(string)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Non autorisé")
		}
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, forbiddenMessage)
		}
		return c.Next()
	}
}
