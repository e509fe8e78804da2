package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"decision-coach/internal/kv"
)

const cachePrefix = "ai_cache_"

// Cache stores decoded LLM results keyed by their inputs.
type Cache struct {
	store kv.Store
	ttl   time.Duration
}

func NewCache(store kv.Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Key is prefix_ followed by the base64 of the JSON-encoded inputs.
func Key(prefix string, inputs interface{}) (string, error) {
	raw, err := json.Marshal(inputs)
	if err != nil {
		return "", err
	}
	return prefix + "_" + base64.StdEncoding.EncodeToString(raw), nil
}

// Get decodes a cached value into dst. Misses and corrupt entries return false.
func (c *Cache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.store.Get(ctx, cachePrefix+key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		_ = c.store.Del(ctx, cachePrefix+key)
		return false, nil
	}
	return true, nil
}

func (c *Cache) Put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, cachePrefix+key, string(raw), c.ttl)
}
