package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("Should return the injected logger instance when present", func(t *testing.T) {
		expected := slog.New(slog.NewJSONHandler(io.Discard, nil))
		ctx := WithContext(context.Background(), expected)

		got := FromContext(ctx)

		// Pointer equality: we must get back exactly what was injected.
		assert.Same(t, expected, got)
	})

	t.Run("Should return the global default logger when context is empty", func(t *testing.T) {
		got := FromContext(context.Background())

		assert.Same(t, slog.Default(), got, "fallback must never be nil")
	})

	t.Run("Should let a nested injection shadow the outer logger", func(t *testing.T) {
		outer := slog.New(slog.NewJSONHandler(io.Discard, nil))
		inner := slog.New(slog.NewTextHandler(io.Discard, nil))

		ctx := WithContext(context.Background(), outer)
		ctx = WithContext(ctx, inner)

		assert.Same(t, inner, FromContext(ctx))
	})
}
