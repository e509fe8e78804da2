package redisdb

import (
	"context"
	"fmt"
	"time"

	"decision-coach/internal/config"
	"decision-coach/internal/kv"
	"decision-coach/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	// StateStoreSize bounds the in-process store for sessions and quota counters.
	StateStoreSize = 10000
	// CacheStoreSize bounds the in-process LLM response cache. It is a separate
	// LRU so cache churn can never evict a session.
	CacheStoreSize = 10000
)

// Stores splits durable state from the evictable response cache. With Redis
// both point at the same store.
type Stores struct {
	State kv.Store
	Cache kv.Store
}

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// OpenStores returns Redis-backed stores when redis.addr is configured and
// reachable, otherwise two independent in-process LRUs. The returned close
// func is never nil.
func OpenStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (Stores, func() error, error) {
	if cfg.Redis.Addr != "" {
		client := NewClient(cfg)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return Stores{}, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("redis connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		rs := kv.NewRedisStore(client)
		return Stores{State: rs, Cache: rs}, client.Close, nil
	}
	state, err := kv.NewMemoryStore(StateStoreSize)
	if err != nil {
		return Stores{}, nil, err
	}
	cache, err := kv.NewMemoryStore(CacheStoreSize)
	if err != nil {
		return Stores{}, nil, err
	}
	log.Warn("redis.addr not set, sessions and LLM cache are process-local")
	return Stores{State: state, Cache: cache}, func() error { return nil }, nil
}
