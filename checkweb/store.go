package checkweb

import (
	"context"
	"time"
)

// Entry records the outcome of the most recent live check for one cache key.
// Entries are immutable once stored; an update is always a full replacement.
type Entry struct {
	// CheckedAt is the time the live check completed.
	CheckedAt time.Time

	// Valid reports whether the check succeeded.
	Valid bool
}

// Fresh reports whether the entry can short-circuit a live check at 'now'.
//
// Only a verified-valid, still-fresh entry counts. A stale or failed entry is
// never a cache hit: failures may be transient (DNS hiccup, temporary 5xx)
// while positives are assumed durable within the timeout window.
func (e Entry) Fresh(timeout time.Duration, now time.Time) bool {
	return e.Valid && now.Sub(e.CheckedAt) < timeout
}

// CacheStore maps a cache key to the validity record of its last live check.
//
// The key is the full URL string, fragment included; distinct fragments of
// the same page are distinct keys. At most one entry exists per key at any
// time: Insert is last-write-wins, and concurrent inserts for the same key
// from racing checks must be tolerated without corruption (each entry is
// self-contained, never a partial merge).
//
// Implementations must be safe for concurrent use and must never hold
// exclusive access across a network call of their own caller. Backend
// failures degrade: a lookup that cannot reach the backend reports a miss,
// an insert that cannot reach the backend is dropped. The cache is an
// optimization, never a failure source.
type CacheStore interface {
	// Lookup returns the entry stored for key, if any. The freshness
	// decision belongs to the caller (Entry.Fresh), since the timeout is
	// caller-configured per environment.
	Lookup(ctx context.Context, key string) (Entry, bool)

	// Insert stores a complete entry for key, replacing any previous one.
	Insert(ctx context.Context, key string, e Entry)
}
