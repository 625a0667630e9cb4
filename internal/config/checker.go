package config

import "time"

// CheckerConfig configures the web checker and its revalidation cache.
type CheckerConfig struct {
	// CacheBackend selects the revalidation store implementation.
	// "none" disables caching entirely: every check performs a live probe.
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"memory" validate:"oneof=none memory otter redis postgres"`

	// CacheTimeout is the freshness window: how long a verified-valid
	// cache entry is trusted without re-checking.
	CacheTimeout time.Duration `envconfig:"CACHE_TIMEOUT" default:"1h" validate:"min=1s"`

	// CacheCapacity caps the number of entries held by the bounded
	// in-memory backend ("otter"). Ignored by the other backends.
	CacheCapacity int `envconfig:"CACHE_CAPACITY" default:"100000" validate:"min=1"`

	// CacheRetention is how long the bounded backend keeps an entry before
	// evicting it. Retention should comfortably exceed CacheTimeout:
	// eviction is a memory policy, freshness is a trust policy.
	CacheRetention time.Duration `envconfig:"CACHE_RETENTION" default:"24h" validate:"min=1s"`

	// UserAgent is sent with every probe request. Some origins reject
	// requests without one.
	UserAgent string `envconfig:"USER_AGENT" default:"huginn-link-checker"`
}
