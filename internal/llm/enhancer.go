package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"decision-coach/internal/advisor"
	"decision-coach/internal/decision"
	"decision-coach/internal/emotion"
	"decision-coach/internal/logger"
	"decision-coach/internal/metrics"
)

// Source tells the caller which path produced a result.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceRules Source = "rules"
)

const (
	opEmotions   = "emotions"
	opPriorities = "priorities"
	opQuestions  = "questions"
)

// Enhancer tries the remote model first and falls back to the rule-based
// engine on any failure. A nil client disables the remote path.
type Enhancer struct {
	client *Client
	cache  *Cache
	quota  *Quota
	rec    Recorder
	log    *logger.Logger
}

func NewEnhancer(client *Client, cache *Cache, quota *Quota, rec Recorder, log *logger.Logger) *Enhancer {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Enhancer{client: client, cache: cache, quota: quota, rec: rec, log: log.With("component", "llm_enhancer")}
}

func (e *Enhancer) Enabled() bool {
	return e != nil && e.client != nil
}

// Remaining reports today's remaining remote calls, 0 when disabled.
func (e *Enhancer) Remaining(ctx context.Context) int {
	if !e.Enabled() || e.quota == nil {
		return 0
	}
	n, err := e.quota.Remaining(ctx)
	if err != nil {
		return 0
	}
	return n
}

// enhance runs cache, quota reservation, remote call and cache store,
// recording exactly one outcome. A failed call refunds its reserved slot.
func enhance[T any](ctx context.Context, e *Enhancer, op, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if e.cache != nil {
		var cached T
		hit, err := e.cache.Get(ctx, key, &cached)
		if err != nil {
			e.log.Warn("cache read failed", "operation", op, "error", err)
		}
		if hit {
			e.rec.LLMCall(op, metrics.OutcomeCacheHit)
			return cached, nil
		}
	}
	if e.client == nil {
		e.rec.LLMCall(op, metrics.OutcomeFallback)
		return zero, ErrDisabled
	}
	var slot *Slot
	if e.quota != nil {
		var err error
		slot, err = e.quota.Reserve(ctx)
		if errors.Is(err, ErrRateLimited) {
			e.rec.LLMCall(op, metrics.OutcomeRateLimited)
			return zero, err
		}
		if err != nil {
			e.rec.LLMCall(op, metrics.OutcomeFallback)
			return zero, fmt.Errorf("quota: %w", err)
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		if slot != nil {
			// Refund even when the request was cancelled.
			if rerr := slot.Release(context.WithoutCancel(ctx)); rerr != nil {
				e.log.Warn("quota refund failed", "operation", op, "error", rerr)
			}
		}
		e.rec.LLMCall(op, metrics.OutcomeFallback)
		return zero, err
	}
	if e.cache != nil {
		if err := e.cache.Put(ctx, key, v); err != nil {
			e.log.Warn("cache write failed", "operation", op, "error", err)
		}
	}
	e.rec.LLMCall(op, metrics.OutcomeRemote)
	return v, nil
}

func (e *Enhancer) fallback(op string, err error) {
	if errors.Is(err, ErrDisabled) {
		return
	}
	e.log.Info("using rule-based result", "operation", op, "reason", err.Error())
}

const emotionSystemPrompt = `You are an emotional analysis assistant. Analyze the emotional content in the text provided.

Available emotion types: fear, excitement, guilt, relief, uncertainty

Return a JSON object with this structure:
{
  "emotions": [
    {"type": "fear", "label": "Fear", "intensity": 0.7}
  ],
  "dominantEmotion": {"type": "excitement", "label": "Excitement", "intensity": 0.8},
  "insight": "A brief 1-2 sentence insight about the emotional state"
}

Intensity should be between 0 and 1. Only include emotions with intensity > 0.2.`

// Emotions reads one option's reflection.
func (e *Enhancer) Emotions(ctx context.Context, decisionText string, option decision.Option) (emotion.OptionInsight, Source) {
	key, err := Key("emotion", map[string]string{"decision": decisionText, "optionName": option.Name, "text": option.EmotionalText})
	if err == nil {
		var res emotion.OptionInsight
		res, err = enhance(ctx, e, opEmotions, key, func(ctx context.Context) (emotion.OptionInsight, error) {
			content, err := e.client.ChatJSON(ctx, emotionSystemPrompt,
				fmt.Sprintf("Decision: \"%s\"\n\nOption: \"%s\"\n\nThoughts/Feelings: \"%s\"", decisionText, option.Name, option.EmotionalText),
				0.3)
			if err != nil {
				return emotion.OptionInsight{}, err
			}
			return parseEmotions(content)
		})
		if err == nil {
			return res, SourceLLM
		}
	}
	e.fallback(opEmotions, err)
	return emotion.Insight(option), SourceRules
}

func parseEmotions(content string) (emotion.OptionInsight, error) {
	var raw struct {
		Emotions        []decision.DetectedEmotion `json:"emotions"`
		DominantEmotion *decision.DetectedEmotion  `json:"dominantEmotion"`
		Insight         string                     `json:"insight"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return emotion.OptionInsight{}, fmt.Errorf("decode emotions: %w", err)
	}
	if strings.TrimSpace(raw.Insight) == "" {
		return emotion.OptionInsight{}, errors.New("decode emotions: missing insight")
	}

	out := emotion.OptionInsight{Emotions: make([]decision.DetectedEmotion, 0, len(raw.Emotions)), Insight: raw.Insight}
	for _, em := range raw.Emotions {
		if cleaned, ok := cleanEmotion(em); ok {
			out.Emotions = append(out.Emotions, cleaned)
		}
	}
	sort.SliceStable(out.Emotions, func(i, j int) bool {
		return out.Emotions[i].Intensity > out.Emotions[j].Intensity
	})
	if raw.DominantEmotion != nil {
		if d, ok := cleanEmotion(*raw.DominantEmotion); ok {
			out.DominantEmotion = &d
		}
	}
	if out.DominantEmotion == nil && len(out.Emotions) > 0 {
		d := out.Emotions[0]
		out.DominantEmotion = &d
	}
	return out, nil
}

func cleanEmotion(em decision.DetectedEmotion) (decision.DetectedEmotion, bool) {
	em.Type = decision.EmotionType(strings.ToLower(string(em.Type)))
	if !em.Type.Valid() {
		return em, false
	}
	em.Label = emotion.Label(em.Type)
	em.Intensity = min(max(em.Intensity, 0), 1)
	return em, true
}

const prioritiesSystemPrompt = `You are a decision analysis assistant. Suggest 5 relevant priorities for the decision.

Return a JSON object with this structure:
{
  "suggestedPriorities": [
    {
      "id": "financial-impact",
      "label": "Financial Impact",
      "description": "Short explanation",
      "value": 4
    }
  ],
  "rationale": "Brief explanation of why these priorities are relevant"
}

The id should be kebab-case and unique. The value should be a default importance rating between 1-5.`

// GroupLLM marks suggestions produced by the remote model.
const GroupLLM = "llm"

// Priorities suggests starter priorities for the decision text.
func (e *Enhancer) Priorities(ctx context.Context, decisionText string) (advisor.Suggestion, Source) {
	key, err := Key("priorities", map[string]string{"decision": decisionText})
	if err == nil {
		var res advisor.Suggestion
		res, err = enhance(ctx, e, opPriorities, key, func(ctx context.Context) (advisor.Suggestion, error) {
			content, err := e.client.ChatJSON(ctx, prioritiesSystemPrompt, fmt.Sprintf("Decision: \"%s\"", decisionText), 0.7)
			if err != nil {
				return advisor.Suggestion{}, err
			}
			return parsePriorities(content)
		})
		if err == nil {
			return res, SourceLLM
		}
	}
	e.fallback(opPriorities, err)
	return advisor.SmartPriorities(decisionText), SourceRules
}

const maxSuggestedPriorities = 5

func parsePriorities(content string) (advisor.Suggestion, error) {
	var raw struct {
		SuggestedPriorities []decision.Priority `json:"suggestedPriorities"`
		Rationale           string              `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return advisor.Suggestion{}, fmt.Errorf("decode priorities: %w", err)
	}
	seen := map[string]bool{}
	out := advisor.Suggestion{Group: GroupLLM, Rationale: raw.Rationale}
	for _, p := range raw.SuggestedPriorities {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || p.Label == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		p.Value = min(max(p.Value, decision.MinRating), decision.MaxRating)
		out.SuggestedPriorities = append(out.SuggestedPriorities, p)
		if len(out.SuggestedPriorities) == maxSuggestedPriorities {
			break
		}
	}
	if len(out.SuggestedPriorities) == 0 {
		return advisor.Suggestion{}, errors.New("decode priorities: no usable priorities")
	}
	return out, nil
}

const questionsSystemPrompt = `You are a critical thinking assistant. Generate 3-4 challenging questions to test the decision.

Categories:
- assumptions: Challenge the assumptions being made
- risks: Highlight potential downsides or risks
- alternatives: Suggest alternatives not considered
- long-term: Consider long-term consequences

Return a JSON object with this structure:
{
  "questions": [
    {
      "question": "What if...",
      "category": "assumptions",
      "icon": "lightbulb"
    }
  ]
}

Icons should be simple, lowercase names of relevant icons.`

// Questions challenges the current winner.
func (e *Enhancer) Questions(ctx context.Context, decisionText string, options []decision.Option, winner decision.Option) ([]advisor.Question, Source) {
	names := strings.Join(decision.Names(options), ", ")
	key, err := Key("devils-advocate", map[string]string{"decision": decisionText, "options": names, "winner": winner.Name})
	if err == nil {
		var res []advisor.Question
		res, err = enhance(ctx, e, opQuestions, key, func(ctx context.Context) ([]advisor.Question, error) {
			content, err := e.client.ChatJSON(ctx, questionsSystemPrompt,
				fmt.Sprintf("Decision: \"%s\"\n\nOptions: %s\n\nLeaning towards: \"%s\"", decisionText, names, winner.Name),
				0.8)
			if err != nil {
				return nil, err
			}
			return parseQuestions(content)
		})
		if err == nil {
			return res, SourceLLM
		}
	}
	e.fallback(opQuestions, err)
	return advisor.ChallengeQuestions(decisionText, options, winner), SourceRules
}

func parseQuestions(content string) ([]advisor.Question, error) {
	var raw struct {
		Questions []advisor.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	out := make([]advisor.Question, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		if strings.TrimSpace(q.Question) == "" || !q.Category.Valid() {
			continue
		}
		out = append(out, q)
		if len(out) == advisor.MaxQuestions {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("decode questions: no usable questions")
	}
	return out, nil
}
