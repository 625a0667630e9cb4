//go:build integration

package linkcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/testsupport"
	"github.com/rafaeljc/huginn/linkcache"
)

func TestPostgresStore_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testsupport.StartPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	store, err := linkcache.NewPostgres(ctx, container.DB)
	require.NoError(t, err, "schema creation must succeed on a fresh database")

	t.Run("Should be idempotent about its schema", func(t *testing.T) {
		_, err := linkcache.NewPostgres(ctx, container.DB)
		assert.NoError(t, err)
	})

	t.Run("Should miss on an unknown key", func(t *testing.T) {
		_, ok := store.Lookup(ctx, "https://example.org/never-checked")
		assert.False(t, ok)
	})

	t.Run("Should round-trip an entry", func(t *testing.T) {
		entry := checkweb.Entry{CheckedAt: time.Now().UTC().Truncate(time.Microsecond), Valid: true}

		store.Insert(ctx, "https://example.org/docs", entry)
		got, ok := store.Lookup(ctx, "https://example.org/docs")

		require.True(t, ok)
		assert.True(t, got.Valid)
		// timestamptz stores microsecond precision.
		assert.True(t, got.CheckedAt.Equal(entry.CheckedAt),
			"expected %v, got %v", entry.CheckedAt, got.CheckedAt)
	})

	t.Run("Should upsert on conflicting keys", func(t *testing.T) {
		key := "https://example.org/flap"
		store.Insert(ctx, key, checkweb.Entry{CheckedAt: time.Now().Add(-time.Hour), Valid: false})
		store.Insert(ctx, key, checkweb.Entry{CheckedAt: time.Now(), Valid: true})

		got, ok := store.Lookup(ctx, key)
		require.True(t, ok)
		assert.True(t, got.Valid)
	})

	t.Run("Should preserve invalid entries distinctly from misses", func(t *testing.T) {
		store.Insert(ctx, "https://example.org/broken", checkweb.Entry{CheckedAt: time.Now(), Valid: false})

		got, ok := store.Lookup(ctx, "https://example.org/broken")
		require.True(t, ok)
		assert.False(t, got.Valid)
	})

	t.Run("Should prune entries past the retention window", func(t *testing.T) {
		store.Insert(ctx, "https://example.org/old", checkweb.Entry{
			CheckedAt: time.Now().Add(-48 * time.Hour),
			Valid:     true,
		})
		store.Insert(ctx, "https://example.org/recent", checkweb.Entry{
			CheckedAt: time.Now(),
			Valid:     true,
		})

		pruned, err := store.Prune(ctx, 24*time.Hour)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pruned, int64(1))

		_, ok := store.Lookup(ctx, "https://example.org/old")
		assert.False(t, ok)
		_, ok = store.Lookup(ctx, "https://example.org/recent")
		assert.True(t, ok)
	})

	t.Run("Should answer readiness checks", func(t *testing.T) {
		assert.Equal(t, "postgres", store.Name())
		assert.NoError(t, store.Check(ctx))
	})
}
