package store

import (
	"decision-coach/internal/bias"
	"decision-coach/internal/decision"
	"decision-coach/internal/emotion"
	"decision-coach/internal/scoring"
)

// BuildRecommendation freezes the current ranking and emotional reading into
// the shape stored with a decision. ok is false when there are no options.
func BuildRecommendation(options []decision.Option, priorities []decision.Priority) (Recommendation, bool) {
	result := scoring.Score(options, priorities)
	rec, ok := scoring.Recommend(result)
	if !ok {
		return Recommendation{}, false
	}

	scores := make([]ScoreSummary, len(result.Ranked))
	for i, s := range result.Ranked {
		scores[i] = ScoreSummary{
			OptionID:   s.Option.ID,
			OptionName: s.Option.Name,
			TotalScore: s.TotalScore,
			Percentage: result.Percentage(s),
		}
	}

	analyses := emotion.AnalyzeOptions(options)
	patterns := bias.Detect(options, analyses, rec.WinnerID)
	var winner *decision.EmotionalAnalysis
	if a, found := emotion.FindAnalysis(analyses, rec.WinnerID); found {
		winner = &a
	}

	return Recommendation{
		WinnerID:         rec.WinnerID,
		WinnerName:       rec.WinnerName,
		Scores:           scores,
		LogicalInsight:   rec.Text,
		EmotionalInsight: bias.EmotionalInsight(winner, patterns),
	}, true
}
