package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	profileModel "studiotrack_backend/internals/features/users/profiles/model"
)

const accessTTLDefault = 24 * time.Hour

// TokenService issues the HS256 access token read by middlewares/auth.AuthJWT.
type TokenService struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &TokenService{Secret: strings.TrimSpace(secret), TTL: ttl, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *TokenService) buildAccessClaims(p profileModel.Profile, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":    p.ID.String(),
		"sub":   p.ID.String(),
		"email": p.Email,
		"role":  p.Role,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.TTL).Unix(),
	}
}

// Issue returns the signed access token and its expiry.
func (s *TokenService) Issue(p profileModel.Profile) (string, time.Time, error) {
	if s.Secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not set")
	}
	now := s.Now()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, s.buildAccessClaims(p, now)).SignedString([]byte(s.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, now.Add(s.TTL), nil
}

// ExpiryOf reads exp from a token signed by us, without enforcing it.
// Falls back to now+TTL so a logout always revokes for long enough.
func (s *TokenService) ExpiryOf(raw string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.Secret), nil
	}); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0).UTC()
		}
	}
	return s.Now().Add(s.TTL)
}
