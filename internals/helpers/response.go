package helper

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func init() {
	// report json names (category_id) instead of Go names (CategoryID)
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError: 400 with one readable line plus the failing tag per field.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	fields := make(map[string]string, len(ve))
	parts := make([]string, 0, len(ve))
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
		parts = append(parts, fieldErr.Field()+": "+fieldErr.Tag())
	}
	sort.Strings(parts)

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:  "Validation échouée (" + strings.Join(parts, ", ") + ")",
		Fields: fields,
	})
}

// ValidateStruct exposes the shared validator instance.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
