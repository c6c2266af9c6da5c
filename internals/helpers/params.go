package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseIDParam reads a positive bigint path parameter.
func ParseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide: "+name)
	}
	return id, nil
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide: "+name)
	}
	return id, nil
}

// QueryInt64 returns (0, false, nil) when the query key is absent.
func QueryInt64(c *fiber.Ctx, key string) (int64, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fiber.NewError(fiber.StatusBadRequest, "Paramètre invalide: "+key)
	}
	return n, true, nil
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseTime accepts RFC3339 or a bare YYYY-MM-DD date (UTC midnight).
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// QueryTime returns (zero, false, nil) when the query key is absent.
func QueryTime(c *fiber.Ctx, key string) (time.Time, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := ParseTime(raw)
	if err != nil {
		return time.Time{}, false, fiber.NewError(fiber.StatusBadRequest, "Date invalide: "+key)
	}
	return t, true, nil
}
