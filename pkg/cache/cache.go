// Package cache stores rendered plate maps so repeated invocations on an
// unchanged layout skip drawing and encoding.
//
// [FileCache] keeps entries as files under a directory and is the CLI
// default. [RedisCache] shares entries between processes, which is what
// `wellmap serve --redis` uses. [NullCache] disables caching.
//
// Keys come from [ArtifactKey], which hashes the contents of every file a
// layout was read from together with the display options. A key can only hit
// when none of its inputs changed, so entries never need invalidating; the
// TTL just bounds disk and memory use.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered figures are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss. Expired and
	// corrupt entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
