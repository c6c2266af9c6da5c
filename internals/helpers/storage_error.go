package helper

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the handlers care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool     { return pgCode(err) == pgUniqueViolation }
func IsForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// StorageStatus maps a storage error to the HTTP status it is reported with.
func StorageStatus(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return fiber.StatusConflict
	case pgForeignKeyViolation, pgCheckViolation, pgInvalidTextRepr:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// StorageError writes err as {error}. notFound replaces the message for 404s.
func StorageError(c *fiber.Ctx, err error, notFound ...string) error {
	status := StorageStatus(err)
	msg := err.Error()

	var fe *fiber.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &fe):
		msg = fe.Message
	case status == fiber.StatusNotFound && len(notFound) > 0:
		msg = notFound[0]
	case errors.As(err, &pgErr):
		msg = pgErr.Message
	}
	return JsonError(c, status, msg)
}
