package checkweb

import (
	"net/http"
	"net/url"
	"time"
)

// Env is the capability bundle CheckWeb needs from its environment.
//
// It is supplied and owned by the caller, and outlives a single check call.
// The checker only borrows it: no capability is cached between calls, so a
// caller may rotate the client or swap the store between invocations.
type Env interface {
	// Client returns the HTTP client used for live probes. The client owns
	// connection pooling, TLS, redirects, and transport timeouts.
	Client() *http.Client

	// ExtraHeaders returns the headers to merge into requests for this URL
	// (auth tokens, accept overrides). May return nil.
	ExtraHeaders(u *url.URL) http.Header

	// Cache returns the shared revalidation store, or nil when no caching
	// is wanted. With a nil cache every call performs a live check.
	Cache() CacheStore

	// CacheTimeout is the freshness window: how long a verified-valid
	// entry is trusted without re-checking.
	CacheTimeout() time.Duration
}

// Environment is a plain-struct Env for callers that do not need per-URL
// header logic. The zero value is usable: default client, no extra headers,
// no cache.
type Environment struct {
	// HTTPClient is the probe client. Nil falls back to http.DefaultClient.
	HTTPClient *http.Client

	// Headers are merged into every probe request.
	Headers http.Header

	// Store is the revalidation cache. Nil disables caching.
	Store CacheStore

	// Timeout is the cache freshness window.
	Timeout time.Duration
}

var _ Env = (*Environment)(nil)

func (e *Environment) Client() *http.Client {
	if e.HTTPClient == nil {
		return http.DefaultClient
	}
	return e.HTTPClient
}

func (e *Environment) ExtraHeaders(u *url.URL) http.Header {
	return e.Headers
}

func (e *Environment) Cache() CacheStore {
	return e.Store
}

func (e *Environment) CacheTimeout() time.Duration {
	return e.Timeout
}
