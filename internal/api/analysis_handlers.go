package api

import (
	"net/http"
	"strings"

	"decision-coach/internal/advisor"
	"decision-coach/internal/bias"
	"decision-coach/internal/decision"
	"decision-coach/internal/emotion"
	"decision-coach/internal/scoring"
	"decision-coach/internal/synthesis"

	"github.com/gin-gonic/gin"
)

// DecisionRequest is the body shared by the analysis endpoints. Fields an
// endpoint does not need are ignored.
type DecisionRequest struct {
	Decision   string              `json:"decision"`
	Options    []decision.Option   `json:"options"`
	Priorities []decision.Priority `json:"priorities"`
	// WinnerID overrides the score leader for patterns and questions.
	WinnerID string `json:"winnerId,omitempty"`
}

// bindDecision decodes and validates the body. requireCount enforces the
// 2 to 4 option range.
func bindDecision(c *gin.Context, requireCount bool) (DecisionRequest, bool) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return req, false
	}
	if err := decision.ValidatePriorities(req.Priorities); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return req, false
	}
	if err := decision.ValidateOptions(req.Options, requireCount); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

// winner picks the explicit WinnerID when it names an option, else the
// score leader.
func (r DecisionRequest) winner(result scoring.Result) (decision.Option, bool) {
	if r.WinnerID != "" {
		if o, ok := decision.FindOption(r.Options, r.WinnerID); ok {
			return o, true
		}
	}
	top, ok := result.Winner()
	return top.Option, ok
}

type scoredOptionView struct {
	scoring.ScoredOption
	Percentage int `json:"percentage"`
}

func scoreViews(result scoring.Result) []scoredOptionView {
	views := make([]scoredOptionView, len(result.Ranked))
	for i, s := range result.Ranked {
		views[i] = scoredOptionView{ScoredOption: s, Percentage: result.Percentage(s)}
	}
	return views
}

// POST /analysis/score
func ScoreHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDecision(c, false)
		if !ok {
			return
		}
		result := scoring.Score(req.Options, req.Priorities)
		body := gin.H{
			"ranked":      scoreViews(result),
			"maxPossible": result.MaxPossible,
		}
		if rec, ok := scoring.Recommend(result); ok {
			body["recommendation"] = rec
		}
		deps.Metrics.AnalysisServed("score")
		c.JSON(http.StatusOK, body)
	}
}

type EmotionsRequest struct {
	Decision string          `json:"decision"`
	Option   decision.Option `json:"option"`
}

// POST /analysis/emotions
func EmotionsHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmotionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		if strings.TrimSpace(req.Option.Name) == "" {
			respondError(c, http.StatusBadRequest, "Option name required")
			return
		}
		insight, source := deps.Enhancer.Emotions(c.Request.Context(), req.Decision, req.Option)
		deps.Metrics.AnalysisServed("emotions")
		c.JSON(http.StatusOK, gin.H{
			"optionId":        req.Option.ID,
			"emotions":        insight.Emotions,
			"dominantEmotion": insight.DominantEmotion,
			"insight":         insight.Insight,
			"source":          source,
		})
	}
}

// POST /analysis/patterns
func PatternsHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDecision(c, false)
		if !ok {
			return
		}
		w, ok := req.winner(scoring.Score(req.Options, req.Priorities))
		if !ok {
			respondError(c, http.StatusBadRequest, "At least one option required")
			return
		}
		analyses := emotion.AnalyzeOptions(req.Options)
		patterns := bias.Detect(req.Options, analyses, w.ID)
		var winnerAnalysis *decision.EmotionalAnalysis
		if a, found := emotion.FindAnalysis(analyses, w.ID); found {
			winnerAnalysis = &a
		}
		deps.Metrics.AnalysisServed("patterns")
		c.JSON(http.StatusOK, gin.H{
			"winnerId":         w.ID,
			"analyses":         analyses,
			"patterns":         patterns,
			"detected":         bias.Detected(patterns),
			"emotionalInsight": bias.EmotionalInsight(winnerAnalysis, patterns),
		})
	}
}

type PrioritiesRequest struct {
	Decision string `json:"decision"`
}

// POST /analysis/priorities
func PrioritiesHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PrioritiesRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Decision) == "" {
			respondError(c, http.StatusBadRequest, "Decision text required")
			return
		}
		s, source := deps.Enhancer.Priorities(c.Request.Context(), req.Decision)
		deps.Metrics.AnalysisServed("priorities")
		c.JSON(http.StatusOK, gin.H{
			"group":               s.Group,
			"suggestedPriorities": s.SuggestedPriorities,
			"rationale":           s.Rationale,
			"source":              source,
		})
	}
}

// POST /analysis/questions
func QuestionsHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDecision(c, false)
		if !ok {
			return
		}
		w, ok := req.winner(scoring.Score(req.Options, req.Priorities))
		if !ok {
			respondError(c, http.StatusBadRequest, "At least one option required")
			return
		}
		qs, source := deps.Enhancer.Questions(c.Request.Context(), req.Decision, req.Options, w)
		deps.Metrics.AnalysisServed("questions")
		c.JSON(http.StatusOK, gin.H{"questions": qs, "source": source})
	}
}

// POST /analysis/report
func ReportHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDecision(c, true)
		if !ok {
			return
		}
		result := scoring.Score(req.Options, req.Priorities)
		rec, _ := scoring.Recommend(result)
		w, _ := req.winner(result)
		analyses := emotion.AnalyzeOptions(req.Options)
		patterns := bias.Detect(req.Options, analyses, w.ID)

		deps.Metrics.AnalysisServed("report")
		c.JSON(http.StatusOK, gin.H{
			"analysis":       synthesis.Analyze(req.Decision, req.Options, req.Priorities, w),
			"ranked":         scoreViews(result),
			"maxPossible":    result.MaxPossible,
			"recommendation": rec,
			"patterns":       bias.Detected(patterns),
		})
	}
}

type ConfidenceRequest struct {
	Score int `json:"score"`
}

// POST /analysis/confidence
func ConfidenceHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConfidenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request")
			return
		}
		reading, err := scoring.Confidence(req.Score)
		if err != nil {
			respondErr(c, deps, err)
			return
		}
		deps.Metrics.AnalysisServed("confidence")
		c.JSON(http.StatusOK, reading)
	}
}

// GET /analysis/prompts/:category
func PromptHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, advisor.PromptFor(c.Param("category")))
	}
}

// GET /priorities/defaults
func DefaultPrioritiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"priorities": decision.DefaultPriorities()})
	}
}
