package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.AnalysisServed("score")
	m.AnalysisServed("score")
	m.LLMCall("emotions", OutcomeFallback)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("score")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("emotions", OutcomeFallback)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("emotions", OutcomeRemote)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.AnalysisServed("report")
	m.ObserveRequest("POST", "/analysis/report", "200", 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `decision_coach_analyses_total{kind="report"} 1`)
	assert.Contains(t, string(body), "decision_coach_http_request_duration_seconds_bucket")
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.AnalysisServed("x")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.analyses.WithLabelValues("x")))
}
