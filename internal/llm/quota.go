package llm

import (
	"context"
	"errors"
	"strconv"
	"time"

	"decision-coach/internal/kv"
)

const (
	quotaKeyPrefix = "llm:quota:"
	quotaKeyTTL    = 48 * time.Hour
)

// Quota is a shared daily call budget that resets at UTC midnight.
type Quota struct {
	store kv.Store
	limit int
	clock Clock
}

func NewQuota(store kv.Store, limit int, clock Clock) *Quota {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Quota{store: store, limit: limit, clock: clock}
}

func (q *Quota) key() string {
	return quotaKeyPrefix + q.clock.Now().UTC().Format("2006-01-02")
}

// Remaining returns how many calls are left today.
func (q *Quota) Remaining(ctx context.Context) (int, error) {
	raw, err := q.store.Get(ctx, q.key())
	if errors.Is(err, kv.ErrNotFound) {
		return q.limit, nil
	}
	if err != nil {
		return 0, err
	}
	used, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return max(0, q.limit-used), nil
}

// Slot is one reserved call. Release hands it back when the call fails.
type Slot struct {
	q   *Quota
	key string
}

// Reserve takes a slot with an atomic increment, so concurrent callers can
// never exceed the limit. It returns ErrRateLimited when the day is spent.
func (q *Quota) Reserve(ctx context.Context) (*Slot, error) {
	key := q.key()
	n, err := q.store.Incr(ctx, key, quotaKeyTTL)
	if err != nil {
		return nil, err
	}
	if n > int64(q.limit) {
		if _, err := q.store.Decr(ctx, key); err != nil {
			return nil, err
		}
		return nil, ErrRateLimited
	}
	return &Slot{q: q, key: key}, nil
}

// Release refunds the slot to the day it was taken from.
func (s *Slot) Release(ctx context.Context) error {
	_, err := s.q.store.Decr(ctx, s.key)
	return err
}
