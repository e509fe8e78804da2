package llm

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"decision-coach/internal/advisor"
	"decision-coach/internal/decision"
	"decision-coach/internal/logger"
	"decision-coach/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emotionReply = `{
	"emotions": [
		{"type": "fear", "label": "Fear", "intensity": 0.4},
		{"type": "EXCITEMENT", "label": "x", "intensity": 1.7},
		{"type": "boredom", "label": "Boredom", "intensity": 0.9}
	],
	"insight": "You are mostly excited."
}`

func TestEnhancer_EmotionsRemoteThenCached(t *testing.T) {
	rig := newRig(t, http.StatusOK, 10, func() string { return emotionReply })
	ctx := context.Background()
	opt := decision.Option{ID: "a", Name: "Move", EmotionalText: "Excited but a bit scared"}

	got, src := rig.enhancer.Emotions(ctx, "Should I move?", opt)
	assert.Equal(t, SourceLLM, src)
	require.Len(t, got.Emotions, 2)
	assert.Equal(t, decision.Excitement, got.Emotions[0].Type)
	assert.Equal(t, 1.0, got.Emotions[0].Intensity)
	assert.Equal(t, "Excitement", got.Emotions[0].Label)
	require.NotNil(t, got.DominantEmotion)
	assert.Equal(t, decision.Excitement, got.DominantEmotion.Type)
	assert.Equal(t, "You are mostly excited.", got.Insight)

	again, src := rig.enhancer.Emotions(ctx, "Should I move?", opt)
	assert.Equal(t, SourceLLM, src)
	assert.Equal(t, got, again)
	assert.Equal(t, int32(1), rig.server.hits.Load())
	assert.Equal(t, []string{metrics.OutcomeRemote, metrics.OutcomeCacheHit}, rig.rec.outcomes())
	assert.Equal(t, 9, rig.enhancer.Remaining(ctx))

	body := rig.server.lastBody.Load().(map[string]interface{})
	assert.Equal(t, "test-model", body["model"])
	assert.Equal(t, map[string]interface{}{"type": "json_object"}, body["response_format"])
}

func TestEnhancer_RateLimitedFallsBack(t *testing.T) {
	rig := newRig(t, http.StatusOK, 1, func() string {
		return `{"suggestedPriorities":[{"id":"fun","label":"Fun","description":"d","value":9}],"rationale":"r"}`
	})
	ctx := context.Background()

	first, src := rig.enhancer.Priorities(ctx, "Should I adopt a cat?")
	assert.Equal(t, SourceLLM, src)
	assert.Equal(t, GroupLLM, first.Group)
	require.Len(t, first.SuggestedPriorities, 1)
	assert.Equal(t, 5, first.SuggestedPriorities[0].Value, "values are clamped")

	second, src := rig.enhancer.Priorities(ctx, "Should I take the job?")
	assert.Equal(t, SourceRules, src)
	assert.Equal(t, advisor.SmartPriorities("Should I take the job?"), second)
	assert.Equal(t, []string{metrics.OutcomeRemote, metrics.OutcomeRateLimited}, rig.rec.outcomes())
	assert.Equal(t, int32(1), rig.server.hits.Load())
}

func TestEnhancer_ParallelCallsRespectDailyLimit(t *testing.T) {
	rig := newRig(t, http.StatusOK, 1, func() string { return emotionReply })
	ctx := context.Background()

	const callers = 6
	sources := make([]Source, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opt := decision.Option{ID: fmt.Sprintf("o%d", i), Name: fmt.Sprintf("Option %d", i), EmotionalText: "excited"}
			_, sources[i] = rig.enhancer.Emotions(ctx, "Which city?", opt)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), rig.server.hits.Load())
	remote := 0
	for _, s := range sources {
		if s == SourceLLM {
			remote++
		}
	}
	assert.Equal(t, 1, remote)
	assert.Equal(t, 0, rig.enhancer.Remaining(ctx))

	outcomes := map[string]int{}
	for _, o := range rig.rec.outcomes() {
		outcomes[o]++
	}
	assert.Equal(t, map[string]int{metrics.OutcomeRemote: 1, metrics.OutcomeRateLimited: callers - 1}, outcomes)
}

func TestEnhancer_ServerErrorFallsBack(t *testing.T) {
	rig := newRig(t, http.StatusInternalServerError, 10, func() string { return "" })
	opts := []decision.Option{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	qs, src := rig.enhancer.Questions(context.Background(), "Pick one", opts, opts[0])
	assert.Equal(t, SourceRules, src)
	assert.Equal(t, advisor.ChallengeQuestions("Pick one", opts, opts[0]), qs)
	assert.Equal(t, []string{metrics.OutcomeFallback}, rig.rec.outcomes())
	assert.Equal(t, 10, rig.enhancer.Remaining(context.Background()), "failed calls do not consume quota")
}

func TestEnhancer_MalformedContentFallsBack(t *testing.T) {
	rig := newRig(t, http.StatusOK, 10, func() string { return `{"questions": [{"question": "", "category": "risks"}]}` })
	opts := []decision.Option{{ID: "a", Name: "A"}}
	_, src := rig.enhancer.Questions(context.Background(), "x", opts, opts[0])
	assert.Equal(t, SourceRules, src)
}

func TestEnhancer_QuestionsFromLLM(t *testing.T) {
	rig := newRig(t, http.StatusOK, 10, func() string {
		return `{"questions": [
			{"question": "What if rent doubles?", "category": "risks", "icon": "shield"},
			{"question": "Ignored", "category": "vibes", "icon": "x"}
		]}`
	})
	opts := []decision.Option{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	qs, src := rig.enhancer.Questions(context.Background(), "Move?", opts, opts[1])
	assert.Equal(t, SourceLLM, src)
	require.Len(t, qs, 1)
	assert.Equal(t, advisor.CategoryRisks, qs[0].Category)
}

func TestEnhancer_Disabled(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEnhancer(nil, nil, nil, rec, logger.Nop())
	assert.False(t, e.Enabled())
	assert.Equal(t, 0, e.Remaining(context.Background()))

	opt := decision.Option{ID: "a", Name: "Quit", EmotionalText: "I'm scared"}
	got, src := e.Emotions(context.Background(), "Quit?", opt)
	assert.Equal(t, SourceRules, src)
	require.NotNil(t, got.DominantEmotion)
	assert.Equal(t, decision.Fear, got.DominantEmotion.Type)
	assert.Equal(t, []string{metrics.OutcomeFallback}, rec.outcomes())
}

func TestManager_QueueAndStats(t *testing.T) {
	srv := newFakeLLM(t, http.StatusOK, func() string { return `{"ok": true}` })
	m := newTestManager(t, newFakeClock())
	c := NewClient(m, PriorityBackground, 5*time.Second, srv.URL+"/", "m", "")

	content, err := c.ChatJSON(context.Background(), "sys", "user", 0.1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, content)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.BackgroundEnqueued)
	assert.Eventually(t, func() bool { return m.Stats().BackgroundProcessed == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, StateClosed, m.Breaker().State())
}

func TestClient_NotFoundIsError(t *testing.T) {
	srv := newFakeLLM(t, http.StatusOK, func() string { return "{}" })
	c := NewClient(newTestManager(t, newFakeClock()), PriorityCritical, time.Second, srv.URL, "m", "")
	_, err := c.Call(context.Background(), "/nope", map[string]string{})
	assert.ErrorContains(t, err, "status 404")
}

func TestManager_BreakerOpensOnServerErrors(t *testing.T) {
	srv := newFakeLLM(t, http.StatusBadGateway, func() string { return "" })
	m := newTestManager(t, newFakeClock())
	c := NewClient(m, PriorityCritical, time.Second, srv.URL, "m", "")
	for i := 0; i < 3; i++ {
		_, err := c.ChatJSON(context.Background(), "s", "u", 0)
		assert.Error(t, err)
	}
	_, err := c.ChatJSON(context.Background(), "s", "u", 0)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(3), srv.hits.Load())
}

func TestParseEmotions_DominantFallsBackToStrongest(t *testing.T) {
	got, err := parseEmotions(`{"emotions":[{"type":"guilt","intensity":0.3},{"type":"relief","intensity":0.6}],"insight":"ok"}`)
	require.NoError(t, err)
	require.NotNil(t, got.DominantEmotion)
	assert.Equal(t, decision.Relief, got.DominantEmotion.Type)

	_, err = parseEmotions(`{"emotions":[]}`)
	assert.Error(t, err)
}
