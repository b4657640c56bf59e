package port

import (
	"context"
	"time"
)

// Cache is the key-value cache contract the application depends on.
// Implementations must be safe for concurrent use and context-aware so
// callers control timeouts. Values are plain strings; serialization is the
// caller's concern, which keeps this port stable across adapters.
type Cache interface {
	// Get fetches the value for key. Misses are reported as ErrMiss so
	// callers can tell them apart from transport errors.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes one or more keys and returns how many were removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
