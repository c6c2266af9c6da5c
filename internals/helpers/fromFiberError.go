package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError renders an error returned by a Transaction callback.
// *fiber.Error keeps its code; anything else goes through StorageError.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return StorageError(c, err)
}

// ErrorHandler is the app-level fallback so nothing escapes without {error}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
