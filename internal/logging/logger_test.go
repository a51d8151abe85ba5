package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestDisabledIsNop verifies production mode writes nothing.
func TestDisabledIsNop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "off.log")

	logger, err := New(Options{DebugMode: false, File: path})
	require.NoError(t, err)
	logger.Info("should not appear")
	_ = logger.Sync()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no log file should be created when debug mode is off")
}

func TestFileSinkWritesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ragchat.log")

	logger, err := New(Options{DebugMode: true, Level: "debug", File: path})
	require.NoError(t, err)

	Get(logger, CategoryAPI).Debug("round trip", zap.Int("status", 200))
	Get(logger, CategoryUI).Info("submit")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `"logger":"api"`)
	assert.Contains(t, content, `"logger":"ui"`)
	assert.Contains(t, content, "round trip")
	assert.Equal(t, 2, strings.Count(content, "\n"))
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warn.log")

	logger, err := New(Options{DebugMode: true, Level: "warn", File: path})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestConsoleEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	logger, err := New(Options{DebugMode: true, Level: "debug", File: path, Console: true})
	require.NoError(t, err)
	Get(logger, CategoryAPI).Debug("round trip")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "round trip")
	assert.Contains(t, line, "api")
	assert.False(t, strings.HasPrefix(line, "{"), "console output is not JSON")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)

	_, err = New(Options{DebugMode: true, Level: "verbose"})
	assert.Error(t, err)
}

func TestGetNilBase(t *testing.T) {
	assert.NotPanics(t, func() {
		Get(nil, CategoryBoot).Info("ignored")
	})
}
