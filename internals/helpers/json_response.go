package helper

import (
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JsonError: {error} with the given status (500 when zero).
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = defaultMessage(status)
	}
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

func defaultMessage(status int) string {
	switch status {
	case fiber.StatusUnauthorized:
		return "Non autorisé"
	case fiber.StatusForbidden:
		return "Accès refusé"
	case fiber.StatusNotFound:
		return "Ressource introuvable"
	case fiber.StatusBadRequest:
		return "Requête invalide"
	default:
		return "Erreur serveur"
	}
}

// JsonOK: raw row or object, 200.
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated: raw created row, 201.
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// JsonUpdated: raw updated row, 200.
func JsonUpdated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonDeleted: {success: true}.
func JsonDeleted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// JsonList writes a slice, turning a nil slice into [] instead of null.
func JsonList(c *fiber.Ctx, data any) error {
	if isNilSlice(data) {
		return c.Status(fiber.StatusOK).JSON([]any{})
	}
	return c.Status(fiber.StatusOK).JSON(data)
}

func isNilSlice(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice && rv.IsNil()
}
