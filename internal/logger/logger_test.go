package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaeljc/huginn/internal/config"
)

func appConfig(level, format, env string) *config.AppConfig {
	return &config.AppConfig{
		Name:        "huginn",
		Version:     "test",
		Environment: env,
		LogLevel:    level,
		LogFormat:   format,
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	t.Run("Should panic on nil config", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewWithWriter(nil, &bytes.Buffer{})
		})
	})

	t.Run("Should emit JSON records with the service identity attached", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(appConfig("info", "json", "development"), &buf)

		log.Info("check complete", slog.String("url", "https://example.org"))

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "check complete", record["msg"])
		assert.Equal(t, "https://example.org", record["url"])
		assert.Equal(t, "huginn", record["service"])
		assert.Equal(t, "test", record["version"])
		assert.Equal(t, "development", record["env"])
	})

	t.Run("Should emit key=value text when configured", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(appConfig("info", "text", "development"), &buf)

		log.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "service=huginn")
	})

	t.Run("Should suppress records below the configured level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(appConfig("warn", "json", "development"), &buf)

		log.Info("too quiet")
		assert.Empty(t, buf.Bytes())

		log.Warn("loud enough")
		assert.NotEmpty(t, buf.Bytes())
	})

	t.Run("Should fall back to info on an unknown level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(appConfig("super-critical", "json", "development"), &buf)

		assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("Should omit source locations in production", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := NewWithWriter(appConfig("info", "json", "production"), &buf)

		log.Info("deployed")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(t, record, "source")
	})
}
