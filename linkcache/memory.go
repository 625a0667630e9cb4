// Package linkcache provides CacheStore implementations for the web checker's
// revalidation cache.
//
// Four backends cover the deployment spectrum: Memory (unbounded in-process
// map, the default), Otter (bounded in-process, for long-running checkers),
// Redis (shared across a checker fleet), and Postgres (survives restarts).
// All of them implement the same last-write-wins contract; the remote ones
// degrade to cache misses when the backend is unreachable.
package linkcache

import (
	"context"
	"sync"

	"github.com/rafaeljc/huginn/checkweb"
)

// Memory is the default in-process store: a mutex-guarded map with no
// eviction. Suitable for short-lived runs where the working set is the set
// of links in the documents being checked.
type Memory struct {
	mtx     sync.Mutex
	entries map[string]checkweb.Entry
}

var _ checkweb.CacheStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: map[string]checkweb.Entry{},
	}
}

// Lookup returns the entry stored for key, if any.
func (m *Memory) Lookup(_ context.Context, key string) (checkweb.Entry, bool) {
	m.mtx.Lock()
	entry, ok := m.entries[key]
	m.mtx.Unlock()
	return entry, ok
}

// Insert stores a complete entry for key, replacing any previous one.
func (m *Memory) Insert(_ context.Context, key string, e checkweb.Entry) {
	m.mtx.Lock()
	m.entries[key] = e
	m.mtx.Unlock()
}

// Len reports the number of stored entries.
func (m *Memory) Len() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.entries)
}
