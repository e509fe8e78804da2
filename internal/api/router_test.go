package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"decision-coach/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRouter_BasicRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"status": "ok", "llm": false}, decode(t, w))

	w = s.do("GET", "/config", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["setupRequired"])
	assert.NotContains(t, w.Body.String(), "test-secret")
}

func TestSetupRouter_Subpath(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Server.Subpath = "/coach" })

	assert.Equal(t, http.StatusOK, s.do("GET", "/coach/health", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do("GET", "/health", nil, "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("POST", "/analysis/score", sampleRequest(), "").Code)

	w := s.do("GET", "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `decision_coach_analyses_total{kind="score"} 1`)
	assert.Contains(t, out, `route="/analysis/score"`)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.RateLimit.PerSecond = 0.001
		c.RateLimit.Burst = 2
	})
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, s.do("POST", "/analysis/confidence", ConfidenceRequest{Score: 5}, "").Code)
	}
	w := s.do("POST", "/analysis/confidence", ConfidenceRequest{Score: 5}, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, strings.HasPrefix(errorMessage(t, w), "Too many requests"))

	// unthrottled routes are unaffected
	assert.Equal(t, http.StatusOK, s.do("GET", "/health", nil, "").Code)
}

func TestIPLimiter_ForgetsIdleClients(t *testing.T) {
	l := newIPLimiter(1, 1)
	assert.True(t, l.allow("1.1.1.1"))
	assert.False(t, l.allow("1.1.1.1"))
	assert.True(t, l.allow("2.2.2.2"))

	later := l.lastCleanup.Add(l.ttl * 2)
	l.now = func() time.Time { return later }
	assert.True(t, l.allow("3.3.3.3"))
	assert.Len(t, l.entries, 1)
}
