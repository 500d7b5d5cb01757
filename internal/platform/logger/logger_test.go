package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, logger.ParseLevel(tt.input, nil))
		})
	}
}

func TestParseLevelWarnsOnInvalid(t *testing.T) {
	var buf bytes.Buffer

	level := logger.ParseLevel("loud", &buf)

	assert.Equal(t, slog.LevelInfo, level)
	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), "configured_level=loud")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("warn", &buf)

	log.Info("hidden")
	log.Warn("shown", "task_id", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"task_id":3`)
}

func TestNewKeepsInvalidLevelWarningOutOfJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("loud", &buf)

	assert.Empty(t, buf.String(), "level warning must not be written to the JSON stream")
	log.Info("after")
	assert.Contains(t, buf.String(), `"msg":"after"`)
	assert.NotContains(t, buf.String(), "invalid log level")
}

func TestSetupInstallsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	log := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "debug"})

	require.NotNil(t, log)
	assert.Same(t, log, slog.Default())
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestContextLogger(t *testing.T) {
	custom, buf := logger.GetTestLogger(t)
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("missing logger uses fallback", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), custom)

		got := logger.FromContext(ctx)
		got.Info("from context", "trace_id", "abc")

		assert.Same(t, custom, got)
		logger.AssertLogField(t, buf, "trace_id", "abc")
	})

	t.Run("nil logger panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}
