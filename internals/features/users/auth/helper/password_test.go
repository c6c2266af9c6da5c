package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPasswordHash(hash, "correct horse"))
	assert.Error(t, CheckPasswordHash(hash, "wrong horse"))
}

func TestResetToken(t *testing.T) {
	raw, hash, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.Equal(t, hash, HashResetToken(raw))
	assert.NotEqual(t, raw, hash)
}
