package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads c.Locals("user_id") set by the auth middleware.
// 401 when missing, 400 when it is not a UUID.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Non autorisé")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Non autorisé")
		}
		return t, nil
	case string:
		s = strings.TrimSpace(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Identifiant utilisateur invalide")
	}
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Non autorisé")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Identifiant utilisateur invalide")
	}
	return id, nil
}

// GetUserRole is "" when the request is anonymous.
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}
