package scheduler

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiotrack_backend/internals/databases/testdb"
	authModel "studiotrack_backend/internals/features/users/auth/model"
	authRepo "studiotrack_backend/internals/features/users/auth/repository"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunCleanupKeepsRecentRevocations(t *testing.T) {
	db := testdb.Open(t)
	now := time.Now().UTC()

	require.NoError(t, authRepo.RevokeToken(db, uuid.New(), "old-token", "secret", now.Add(-30*24*time.Hour)))
	require.NoError(t, authRepo.RevokeToken(db, uuid.Nil, "fresh-token", "secret", now.Add(-24*time.Hour)))
	require.NoError(t, authRepo.RevokeToken(db, uuid.Nil, "live-token", "secret", now.Add(time.Hour)))

	RunCleanup(db, 7, quiet())

	var left int64
	require.NoError(t, db.Model(&authModel.RevokedToken{}).Count(&left).Error)
	assert.EqualValues(t, 2, left)

	gone, err := authRepo.IsRevoked(db, "old-token", "secret")
	require.NoError(t, err)
	assert.False(t, gone)
	kept, err := authRepo.IsRevoked(db, "fresh-token", "secret")
	require.NoError(t, err)
	assert.True(t, kept)
}

func TestStartCleanupScheduler(t *testing.T) {
	_, err := StartCleanupScheduler(nil, "not a schedule", 7, quiet())
	assert.Error(t, err)

	c, err := StartCleanupScheduler(nil, "@daily", 7, quiet())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
