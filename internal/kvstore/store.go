// Package kvstore holds short-lived process state (rate-limit counters,
// webhook delivery tokens) behind a swappable store.
package kvstore

import (
	"context"
	"time"
)

// Store is a key/value store with per-key expiry.
// A zero ttl means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX stores the value only when the key is absent and reports whether it did
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Incr increments a counter, starting its ttl on first use
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
	// Sweep drops expired entries and returns how many were removed
	Sweep(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
