// Package cache stores rendered artifacts keyed by definition content and
// render options.
//
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for the
// HTTP service when several instances share work, and [NullCache] when
// caching is disabled. Keys are produced by a [Keyer] so that callers never
// build key strings by hand.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
