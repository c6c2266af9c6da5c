package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsSameInstance(t *testing.T) {
	require.NoError(t, Init(Options{NoFiles: true, Level: "debug"}))
	a := Get("x")
	b := Get("x")
	assert.Same(t, a, b)
	assert.Equal(t, logrus.DebugLevel, a.GetLevel())
}

func TestInitWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Dir: dir, Format: "json"}))
	t.Cleanup(func() { _ = Init(Options{NoFiles: true}) })

	App().Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestInitFallsBackOnBadLevel(t *testing.T) {
	require.NoError(t, Init(Options{NoFiles: true, Level: "loud"}))
	assert.Equal(t, logrus.InfoLevel, App().GetLevel())
}
