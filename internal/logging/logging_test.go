package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewWritesFileOutsideDebug(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "app.log")
	var stderr bytes.Buffer

	logger, cleanup, err := newLogger(&stderr, Options{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 10})
	require.NoError(t, err)

	logger.Info("application started")
	logger.Debug("request")
	logger.Error("database commit failed", "error", "locked")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "application started")
	assert.Contains(t, string(data), "database commit failed")
	assert.NotContains(t, string(data), `"msg":"request"`)
	assert.Contains(t, stderr.String(), "application started")
}

func TestNewSkipsFileInDebug(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "app.log")
	var stderr bytes.Buffer

	logger, cleanup, err := newLogger(&stderr, Options{Level: "debug", File: path, MaxSizeMB: 1, Debug: true})
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("request")
	assert.Contains(t, stderr.String(), `"msg":"request"`)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewSetsDefault(t *testing.T) {
	restoreDefault(t)
	var stderr bytes.Buffer

	logger, cleanup, err := newLogger(&stderr, Options{Level: "warn"})
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, logger, slog.Default())
	slog.Info("hidden")
	slog.Warn("shown")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
