package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		name     string
		level    string
		logDebug bool
		logInfo  bool
		logWarn  bool
	}{
		{name: "debug", level: "debug", logDebug: true, logInfo: true, logWarn: true},
		{name: "info", level: "info", logDebug: false, logInfo: true, logWarn: true},
		{name: "upper_case", level: "WARN", logDebug: false, logInfo: false, logWarn: true},
		{name: "error", level: "error", logDebug: false, logInfo: false, logWarn: false},
		{name: "invalid_falls_back_to_info", level: "verbose", logDebug: false, logInfo: true, logWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, log)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tt.logDebug, strings.Contains(out, "debug message"))
			assert.Equal(t, tt.logInfo, strings.Contains(out, "info message"))
			assert.Equal(t, tt.logWarn, strings.Contains(out, "warn message"))

			// Setup also installs the logger as the slog default
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	log, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	log.Info("hello", "port", 8080)

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.EqualValues(t, 8080, entries[0]["port"])
}

func TestParseLevel(t *testing.T) {
	lvl, ok := logger.ParseLevel("Debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, ok = logger.ParseLevel("")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestContextHelpers(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	fallback := slog.New(slog.NewTextHandler(&logger.TestLogBuffer{}, nil))

	t.Run("empty_context", func(t *testing.T) {
		got, ok := logger.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
	})

	t.Run("round_trip", func(t *testing.T) {
		ctx := logger.WithContext(context.Background(), log)

		got, ok := logger.FromContext(ctx)
		assert.True(t, ok)
		assert.Same(t, log, got)
		assert.Same(t, log, logger.FromContextOrDefault(ctx, fallback))
	})
}
