package auth

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":    uuid.NewString(),
		"email": "editor@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func newApp(opts AuthJWTOpts, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthJWT(opts)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocUserRole).(string))
	})
	app.Get("/p", handlers...)
	return app
}

func TestAuthJWTMissingToken(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})
	resp, err := app.Test(httptest.NewRequest("GET", "/p", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTBearer(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})
	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, validClaims("admin"), testSecret))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWTCookieFallback(t *testing.T) {
	tok := sign(t, validClaims("user"), testSecret)

	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	resp, err := newApp(AuthJWTOpts{Secret: testSecret}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	resp, err = newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWTRejectsBadTokens(t *testing.T) {
	expired := validClaims("user")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noID := validClaims("user")
	delete(noID, "id")

	cases := map[string]string{
		"wrong secret": sign(t, validClaims("user"), "other"),
		"expired":      sign(t, expired, testSecret),
		"missing id":   sign(t, noID, testSecret),
		"garbage":      "not.a.jwt",
	}
	app := newApp(AuthJWTOpts{Secret: testSecret})
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/p", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthJWTRevokedToken(t *testing.T) {
	tok := sign(t, validClaims("user"), testSecret)

	revoked := newApp(AuthJWTOpts{Secret: testSecret, RevocationChecker: func(raw string) (bool, error) {
		return raw == tok, nil
	}})
	req := httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := revoked.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	broken := newApp(AuthJWTOpts{Secret: testSecret, RevocationChecker: func(string) (bool, error) {
		return false, errors.New("db down")
	}})
	req = httptest.NewRequest("GET", "/p", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = broken.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestOnlyRoles(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret}, OnlyRoles("admins only", "admin"))

	for role, want := range map[string]int{"admin": fiber.StatusOK, "user": fiber.StatusForbidden} {
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+sign(t, validClaims(role), testSecret))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestAuthJWTSubjectLoaderOverridesClaim(t *testing.T) {
	tok := sign(t, validClaims("admin"), testSecret)
	get := func(app *fiber.App) (int, string) {
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(body)
	}

	demoted := newApp(AuthJWTOpts{Secret: testSecret, SubjectLoader: func(string) (string, bool, error) {
		return "user", true, nil
	}}, OnlyRoles("admins only", "admin"))
	code, _ := get(demoted)
	assert.Equal(t, fiber.StatusForbidden, code)

	current := newApp(AuthJWTOpts{Secret: testSecret, SubjectLoader: func(string) (string, bool, error) {
		return "user", true, nil
	}})
	code, body := get(current)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "user", body)

	deleted := newApp(AuthJWTOpts{Secret: testSecret, SubjectLoader: func(string) (string, bool, error) {
		return "", false, nil
	}})
	code, _ = get(deleted)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	broken := newApp(AuthJWTOpts{Secret: testSecret, SubjectLoader: func(string) (string, bool, error) {
		return "", false, errors.New("db down")
	}})
	code, _ = get(broken)
	assert.Equal(t, fiber.StatusInternalServerError, code)
}
