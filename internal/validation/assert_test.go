package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertNotNil(t *testing.T) {
	t.Parallel()

	t.Run("Should panic with the dependency name on nil", func(t *testing.T) {
		t.Parallel()
		assert.PanicsWithValue(t, "critical error: database pool cannot be nil", func() {
			var p *int
			AssertNotNil(p, "database pool")
		})
	})

	t.Run("Should pass through on a non-nil pointer", func(t *testing.T) {
		t.Parallel()
		v := 42
		assert.NotPanics(t, func() {
			AssertNotNil(&v, "value")
		})
	})
}

func TestAssertNotEmpty(t *testing.T) {
	t.Parallel()

	t.Run("Should panic on an empty string", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			AssertNotEmpty("", "user agent")
		})
	})

	t.Run("Should pass through on a non-empty string", func(t *testing.T) {
		t.Parallel()
		assert.NotPanics(t, func() {
			AssertNotEmpty("huginn", "user agent")
		})
	})
}
