package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "studiotrack_backend/internals/helpers"
)

// Locals written for downstream handlers.
const (
	LocUserID    = "user_id"
	LocUserRole  = "userRole"
	LocUserEmail = "user_email"
	LocClaims    = "jwt_claims"
	LocTokenExp  = "token_exp"
)

type AuthJWTOpts struct {
	Secret              string
	RevocationChecker   func(rawToken string) (bool, error) // true when revoked
	AllowCookieFallback bool                                // read the access_token cookie when there is no Bearer
	// SubjectLoader returns the current role of the token's user. found=false
	// means the account is gone. When set, its role replaces the claim.
	SubjectLoader func(userID string) (role string, found bool, err error)
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		fields := strings.Fields(c.Get(fiber.HeaderAuthorization))
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			raw = strings.Trim(fields[1], "\"'")
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies(helper.AccessTokenName))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Non autorisé")
		}

		if o.RevocationChecker != nil {
			revoked, err := o.RevocationChecker(raw)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Vérification de session impossible")
			}
			if revoked {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Session révoquée")
			}
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Session invalide ou expirée")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Session invalide")
		}

		uid := strClaim(claims, "id")
		if uid == "" {
			uid = strClaim(claims, "sub")
		}
		if _, err := uuid.Parse(uid); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Session invalide")
		}

		role := strClaim(claims, "role")
		if o.SubjectLoader != nil {
			current, found, err := o.SubjectLoader(uid)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Vérification de session impossible")
			}
			if !found {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Compte introuvable")
			}
			role = current
		}

		c.Locals(LocClaims, claims)
		c.Locals(LocUserID, uid)
		c.Locals(LocUserRole, role)
		c.Locals(LocUserEmail, strClaim(claims, "email"))
		if exp, ok := claims["exp"].(float64); ok {
			c.Locals(LocTokenExp, time.Unix(int64(exp), 0).UTC())
		}
		helper.SetRawAccessToken(c, raw)

		return c.Next()
	}
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
