package kv

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryStore is a bounded in-process Store. The least recently used keys are
// evicted once size is reached.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	cache, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

// WithClock replaces the expiry clock.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(ttl)
}

func (s *MemoryStore) lookup(key string) (memoryEntry, bool) {
	e, ok := s.cache.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	if e.expired(s.now()) {
		s.cache.Remove(key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(key, memoryEntry{value: value, expires: s.expiry(ttl)})
	return nil
}

func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
	return nil
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		e = memoryEntry{value: "0", expires: s.expiry(ttl)}
	}
	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, err
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	s.cache.Add(key, e)
	return n, nil
}

func (s *MemoryStore) Decr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, err
	}
	n--
	e.value = strconv.FormatInt(n, 10)
	s.cache.Add(key, e)
	return n, nil
}

func (s *MemoryStore) Count(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for _, k := range s.cache.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if e, ok := s.cache.Peek(k); ok && !e.expired(now) {
			n++
		}
	}
	return n, nil
}
