// Package cache stores rendered diagram artifacts between runs.
//
// Rendering is deterministic: the same model text and options always give the
// same bytes, so artifacts are keyed by a SHA-256 hash of the input plus the
// options that affect the output. The CLI uses a [FileCache] under the user
// cache directory; --no-cache switches to a [NullCache].
//
// Cache failures are never fatal. Callers log them and render from scratch.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour
