package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"decision-coach/internal/kv"
	"decision-coach/internal/logger"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recorded struct{ op, outcome string }

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *fakeRecorder) LLMCall(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recorded{op, outcome})
}

func (r *fakeRecorder) outcomes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.outcome
	}
	return out
}

// fakeLLM serves chat completions whose content is produced by reply.
type fakeLLM struct {
	*httptest.Server
	hits     atomic.Int32
	lastBody atomic.Value
}

func newFakeLLM(t *testing.T, status int, reply func() string) *fakeLLM {
	t.Helper()
	f := &fakeLLM{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastBody.Store(body)
		if r.URL.Path != chatCompletionsPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply()}},
			},
		})
	}))
	t.Cleanup(f.Close)
	return f
}

func newTestManager(t *testing.T, clock Clock) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CriticalQueueSize = 4
	cfg.BackgroundQueueSize = 4
	m := NewManager(cfg, NewCircuitBreaker(cfg.FailureThreshold, time.Minute, clock, logger.Nop()), logger.Nop())
	t.Cleanup(m.Stop)
	return m
}

func newMemStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.NewMemoryStore(128)
	require.NoError(t, err)
	return s
}

type testRig struct {
	server   *fakeLLM
	enhancer *Enhancer
	rec      *fakeRecorder
	clock    *fakeClock
}

func newRig(t *testing.T, status int, limit int, reply func() string) *testRig {
	t.Helper()
	clock := newFakeClock()
	srv := newFakeLLM(t, status, reply)
	store := newMemStore(t)
	client := NewClient(newTestManager(t, clock), PriorityCritical, 5*time.Second, srv.URL, "test-model", "sk-test")
	rec := &fakeRecorder{}
	e := NewEnhancer(client, NewCache(store, 24*time.Hour), NewQuota(store, limit, clock), rec, logger.Nop())
	return &testRig{server: srv, enhancer: e, rec: rec, clock: clock}
}
