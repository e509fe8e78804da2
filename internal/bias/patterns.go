// Package bias flags cognitive patterns from emotion vectors and the ranking.
package bias

import (
	"fmt"
	"strings"

	"decision-coach/internal/decision"
)

const (
	// StrongThreshold marks an emotion as driving the choice.
	StrongThreshold = 0.5
	// PresentThreshold marks an emotion as noticeably present.
	PresentThreshold = 0.3
)

const (
	FearAvoidance  = "fear-avoidance"
	ExcitementBias = "excitement-bias"
	ComfortBias    = "comfort-bias"
	GuiltDriven    = "guilt-driven"
)

// Detect evaluates the fixed pattern catalog. All four patterns are always
// returned in catalog order; use Detected to filter.
func Detect(options []decision.Option, analyses []decision.EmotionalAnalysis, winnerOptionID string) []decision.CognitivePattern {
	var winner *decision.EmotionalAnalysis
	others := make([]decision.EmotionalAnalysis, 0, len(analyses))
	for i := range analyses {
		if analyses[i].OptionID == winnerOptionID {
			if winner == nil {
				winner = &analyses[i]
			}
			continue
		}
		others = append(others, analyses[i])
	}

	fearInOthers := false
	for _, a := range others {
		if a.Has(decision.Fear, StrongThreshold) {
			fearInOthers = true
			break
		}
	}
	winnerHas := func(t decision.EmotionType, threshold float64) bool {
		return winner != nil && winner.Has(t, threshold)
	}

	guilt := false
	for _, a := range analyses {
		if a.Has(decision.Guilt, PresentThreshold) {
			guilt = true
			break
		}
	}

	return []decision.CognitivePattern{
		{
			ID:          FearAvoidance,
			Label:       "Fear-Based Avoidance",
			Description: "You may be steering away from options that feel scary, even if they could be valuable.",
			Detected:    fearInOthers && !winnerHas(decision.Fear, PresentThreshold),
		},
		{
			ID:          ExcitementBias,
			Label:       "Excitement Without Planning",
			Description: "The thrill of this option is compelling, but consider the practical details too.",
			Detected:    winnerHas(decision.Excitement, StrongThreshold),
		},
		{
			ID:          ComfortBias,
			Label:       "Comfort-Seeking",
			Description: "The appeal of relief is strong. Make sure it aligns with your long-term goals.",
			Detected:    winnerHas(decision.Relief, PresentThreshold) && fearInOthers,
		},
		{
			ID:          GuiltDriven,
			Label:       "Guilt Influence",
			Description: "Guilt is playing a role in how you view these options. Consider what you truly want.",
			Detected:    guilt,
		},
	}
}

// Detected keeps only the patterns that fired, preserving order.
func Detected(patterns []decision.CognitivePattern) []decision.CognitivePattern {
	out := make([]decision.CognitivePattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Detected {
			out = append(out, p)
		}
	}
	return out
}

// EmotionalInsight phrases the winner's dominant emotion and appends the
// first detected pattern's description. Empty when there is nothing to say.
func EmotionalInsight(winner *decision.EmotionalAnalysis, patterns []decision.CognitivePattern) string {
	var parts []string
	if winner != nil && winner.DominantEmotion != nil {
		parts = append(parts, dominantSentence(winner.OptionName, winner.DominantEmotion.Type))
	}
	if fired := Detected(patterns); len(fired) > 0 {
		parts = append(parts, fired[0].Description)
	}
	return strings.Join(parts, " ")
}

func dominantSentence(name string, t decision.EmotionType) string {
	switch t {
	case decision.Excitement:
		return fmt.Sprintf("You feel genuine excitement about \"%s\". That enthusiasm is worth honoring.", name)
	case decision.Relief:
		return fmt.Sprintf("Choosing \"%s\" brings you a sense of relief and peace.", name)
	case decision.Fear:
		return fmt.Sprintf("You have some concerns about \"%s\", but you're facing them courageously.", name)
	case decision.Uncertainty:
		return fmt.Sprintf("You're still working through mixed feelings about \"%s\". That's okay, clarity often comes with time.", name)
	case decision.Guilt:
		return fmt.Sprintf("There's some guilt tied to \"%s\". Be gentle with yourself as you process this.", name)
	default:
		panic(fmt.Sprintf("bias: unhandled emotion %q", t))
	}
}
