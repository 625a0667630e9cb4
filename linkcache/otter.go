package linkcache

import (
	"context"
	"time"

	"github.com/maypok86/otter"

	"github.com/rafaeljc/huginn/checkweb"
)

// Otter is a bounded in-process store backed by the S3-FIFO cache from the
// 'otter' library. Unlike Memory it has a hard capacity cap, which matters
// for long-running checkers that see an unbounded stream of URLs.
//
// The retention TTL here is an eviction policy, not a freshness decision:
// the checker still applies its own freshness window on every lookup.
// Retention only has to be long enough to keep entries around while they
// could still be fresh.
type Otter struct {
	store otter.Cache[string, checkweb.Entry]
}

var _ checkweb.CacheStore = (*Otter)(nil)

// NewOtter initializes the bounded store.
// capacity: max number of entries (hard cap to prevent OOM).
// retention: how long an entry is kept before eviction.
func NewOtter(capacity int, retention time.Duration) (*Otter, error) {
	builder := otter.MustBuilder[string, checkweb.Entry](capacity).
		WithTTL(retention)

	cache, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return &Otter{store: cache}, nil
}

// Lookup returns the entry stored for key, if it has not been evicted.
// This operation is virtually lock-free.
func (o *Otter) Lookup(_ context.Context, key string) (checkweb.Entry, bool) {
	return o.store.Get(key)
}

// Insert stores a complete entry for key, replacing any previous one.
// The retention TTL configured in NewOtter is applied automatically.
func (o *Otter) Insert(_ context.Context, key string, e checkweb.Entry) {
	o.store.Set(key, e)
}

// Close gracefully shuts down the cache and its background cleanup goroutines.
func (o *Otter) Close() {
	o.store.Close()
}
