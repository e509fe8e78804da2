// Package kv is the small expiring key/value surface shared by sessions, the
// LLM response cache and the daily quota. Redis backs it in production and an
// in-process LRU when no Redis is configured.
package kv

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value; ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	// Incr adds one and returns the new value. ttl is applied when the key
	// is created and left alone afterwards.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Decr subtracts one and returns the new value. A missing key is a no-op
	// returning 0, so a refund never creates a key without expiry.
	Decr(ctx context.Context, key string) (int64, error)
	// Count returns the number of live keys with the given prefix.
	Count(ctx context.Context, prefix string) (int, error)
}
