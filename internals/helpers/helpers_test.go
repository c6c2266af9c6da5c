package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func call(t *testing.T, h fiber.Handler, target string) (int, string) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/t/:id?", h)
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestStorageStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), fiber.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, fiber.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, fiber.StatusBadRequest},
		{"check", &pgconn.PgError{Code: "23514"}, fiber.StatusBadRequest},
		{"fiber error", fiber.NewError(fiber.StatusForbidden, "no"), fiber.StatusForbidden},
		{"deadline", context.DeadlineExceeded, fiber.StatusGatewayTimeout},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StorageStatus(tc.err))
		})
	}
	assert.True(t, IsUniqueViolation(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
}

func TestJsonErrorShape(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusBadRequest, "")
	}, "/t")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Requête invalide"}`, body)
}

func TestStorageErrorNotFoundMessage(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return StorageError(c, gorm.ErrRecordNotFound, "Vidéo introuvable")
	}, "/t")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Vidéo introuvable"}`, body)
}

func TestErrorHandlerRendersEscapedErrors(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "déjà pris")
	}, "/t")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.JSONEq(t, `{"error":"déjà pris"}`, body)
}

func TestJsonListNil(t *testing.T) {
	var rows []string
	_, body := call(t, func(c *fiber.Ctx) error { return JsonList(c, rows) }, "/t")
	assert.Equal(t, "[]", body)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Title string `json:"title" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}
	err := ValidateStruct(req{Email: "nope"})
	require.Error(t, err)

	status, body := call(t, func(c *fiber.Ctx) error { return ValidationError(c, err) }, "/t")
	assert.Equal(t, fiber.StatusBadRequest, status)

	var out ErrorResponse
	require.NoError(t, sonic.UnmarshalString(body, &out))
	assert.Equal(t, map[string]string{"title": "required", "email": "email"}, out.Fields)
	assert.Contains(t, out.Error, "title: required")
}

func TestParseIDParam(t *testing.T) {
	h := func(c *fiber.Ctx) error {
		id, err := ParseIDParam(c, "id")
		if err != nil {
			return err
		}
		return c.SendString(fmt.Sprint(id))
	}
	status, body := call(t, h, "/t/42")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "42", body)

	for _, bad := range []string{"/t/abc", "/t/0", "/t/-3"} {
		status, _ = call(t, h, bad)
		assert.Equal(t, fiber.StatusBadRequest, status, bad)
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01T00:00:00Z", got.Format("2006-01-02T15:04:05Z07:00"))

	got, err = ParseTime("2024-02-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = ParseTime("01/02/2024")
	assert.Error(t, err)
}

func TestRetryOnConflict(t *testing.T) {
	calls := 0
	err := RetryOnConflict(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "23505"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = RetryOnConflict(context.Background(), 3, func() error {
		calls++
		return &pgconn.PgError{Code: "23505"}
	})
	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, 3, calls)

	calls = 0
	boom := errors.New("boom")
	err = RetryOnConflict(context.Background(), 5, func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("**Logo** en haut\nfond rouge")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Logo</strong>")
	assert.Contains(t, html, "<br")

	html, err = RenderMarkdown("")
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "prete-a-exporter", Slugify("  Prête à exporter!! ", 0))
	assert.Equal(t, "item", Slugify("???", 0))
	assert.Equal(t, "abc", Slugify("abcdef", 3))
}
