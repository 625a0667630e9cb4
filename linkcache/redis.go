package linkcache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafaeljc/huginn/checkweb"
	"github.com/rafaeljc/huginn/internal/logger"
	"github.com/rafaeljc/huginn/internal/observability"
	"github.com/rafaeljc/huginn/internal/validation"
)

// keyPrefix is the namespace used for all link keys in Redis.
// Example: "link:https://example.org/guide#install"
const keyPrefix = "link"

// Redis hash field names for one entry.
const (
	fieldCheckedAt = "checked_at"
	fieldValid     = "valid"
)

// Redis is a CacheStore shared by a fleet of checkers: one instance paying
// for a page fetch seeds anchor entries every other instance can hit.
//
// Backend failures never fail a check. A lookup that cannot reach Redis
// reports a miss (forcing a live probe, which is always correct), an insert
// that cannot reach Redis is dropped. Both are counted and logged at debug.
type Redis struct {
	client    *redis.Client
	retention time.Duration
}

var _ checkweb.CacheStore = (*Redis)(nil)

// NewRedis wraps an existing client. retention bounds how long Redis keeps
// an entry; zero means entries never expire server-side.
func NewRedis(client *redis.Client, retention time.Duration) *Redis {
	validation.AssertNotNil(client, "redis client")
	return &Redis{client: client, retention: retention}
}

// Lookup fetches the entry hash for key. Absent keys, unreachable backends,
// and corrupt hashes are all reported identically as a miss.
func (r *Redis) Lookup(ctx context.Context, key string) (checkweb.Entry, bool) {
	fields, err := r.client.HGetAll(ctx, redisKey(key)).Result()
	if err != nil {
		observability.CacheBackendErrors.WithLabelValues("redis", "lookup").Inc()
		logger.FromContext(ctx).Debug("redis lookup failed, treating as miss",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return checkweb.Entry{}, false
	}
	// HGetAll returns an empty map for missing keys, not an error.
	if len(fields) == 0 {
		return checkweb.Entry{}, false
	}

	nanos, err := strconv.ParseInt(fields[fieldCheckedAt], 10, 64)
	if err != nil {
		observability.CacheBackendErrors.WithLabelValues("redis", "lookup").Inc()
		return checkweb.Entry{}, false
	}

	return checkweb.Entry{
		CheckedAt: time.Unix(0, nanos),
		Valid:     fields[fieldValid] == "1",
	}, true
}

// Insert stores the entry as a hash and refreshes the retention TTL.
// The two commands are pipelined; an interleaved insert from another
// checker simply wins or loses whole, never merges.
func (r *Redis) Insert(ctx context.Context, key string, e checkweb.Entry) {
	valid := "0"
	if e.Valid {
		valid = "1"
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, redisKey(key), map[string]interface{}{
		fieldCheckedAt: strconv.FormatInt(e.CheckedAt.UnixNano(), 10),
		fieldValid:     valid,
	})
	if r.retention > 0 {
		pipe.Expire(ctx, redisKey(key), r.retention)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		observability.CacheBackendErrors.WithLabelValues("redis", "insert").Inc()
		logger.FromContext(ctx).Debug("redis insert dropped",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Name identifies this component in readiness probes.
func (r *Redis) Name() string {
	return "redis"
}

// Check verifies the connection to the Redis server.
func (r *Redis) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}

func redisKey(key string) string {
	return keyPrefix + ":" + key
}
