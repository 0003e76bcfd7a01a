// Package cache stores encoded layout results between runs.
//
// Three backends implement [Cache]:
//   - [NullCache]: stores nothing, used with --no-cache
//   - [FileCache]: hash-sharded JSON entries on disk, the CLI default
//   - [RedisCache]: a shared Redis instance for the HTTP service
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same scene and constraints. [Open] builds a backend from a spec string.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired entry.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes.
const (
	// TTLLayout bounds how long a computed pass is reused. Passes are pure
	// functions of the scene and constraints, so this only limits growth.
	TTLLayout = 7 * 24 * time.Hour
)
