package auth

import (
	"context"
	"fmt"
	"time"

	"decision-coach/internal/kv"
)

const (
	sessionKeyFmt = "session:%d"
	sessionPrefix = "session:"

	// SessionTTL is the login lifetime; IdleTTL is refreshed on every request.
	SessionTTL = 7 * 24 * time.Hour
	IdleTTL    = 30 * time.Minute
)

// Sessions keeps one active token per user.
type Sessions struct {
	store kv.Store
}

func NewSessions(store kv.Store) *Sessions {
	return &Sessions{store: store}
}

func (s *Sessions) Set(ctx context.Context, userId uint, token string, duration time.Duration) error {
	return s.store.Set(ctx, fmt.Sprintf(sessionKeyFmt, userId), token, duration)
}

// Get returns kv.ErrNotFound when the user has no live session.
func (s *Sessions) Get(ctx context.Context, userId uint) (string, error) {
	return s.store.Get(ctx, fmt.Sprintf(sessionKeyFmt, userId))
}

func (s *Sessions) Delete(ctx context.Context, userId uint) error {
	return s.store.Del(ctx, fmt.Sprintf(sessionKeyFmt, userId))
}

// OnlineUserCount returns the number of users with active sessions.
func (s *Sessions) OnlineUserCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx, sessionPrefix)
}
