package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileModel "studiotrack_backend/internals/features/users/profiles/model"
)

func fixedTokens(now time.Time) *TokenService {
	s := NewTokenService("secret", time.Hour)
	s.Now = func() time.Time { return now }
	return s
}

func TestIssueCarriesProfileClaims(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	s := fixedTokens(now)
	p := profileModel.Profile{ID: uuid.New(), Email: "ed@example.com", Role: "admin"}

	raw, exp, err := s.Issue(p)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, p.ID.String(), claims["id"])
	assert.Equal(t, p.ID.String(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "ed@example.com", claims["email"])
	assert.NotEmpty(t, claims["jti"])
}

func TestIssueWithoutSecret(t *testing.T) {
	s := NewTokenService("  ", 0)
	assert.Equal(t, accessTTLDefault, s.TTL)
	_, _, err := s.Issue(profileModel.Profile{ID: uuid.New()})
	assert.Error(t, err)
}

func TestExpiryOf(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	s := fixedTokens(now)
	raw, exp, err := s.Issue(profileModel.Profile{ID: uuid.New(), Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, exp, s.ExpiryOf(raw))

	// expired tokens still report their exp
	old := fixedTokens(now.Add(-3 * time.Hour))
	raw, exp, err = old.Issue(profileModel.Profile{ID: uuid.New(), Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, exp, s.ExpiryOf(raw))

	assert.Equal(t, now.Add(time.Hour), s.ExpiryOf("not-a-jwt"))
}
