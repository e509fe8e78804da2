// Package emotion turns free-text reflections into weighted emotion tags by
// counting lexicon hits per category.
package emotion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"decision-coach/internal/decision"
)

// matchesForFull is the match count at which intensity saturates.
const matchesForFull = 3

// Detect returns the emotions present in text, strongest first. Categories
// with no hits are omitted; equal intensities keep catalog order.
func Detect(text string) []decision.DetectedEmotion {
	if strings.TrimSpace(text) == "" {
		return []decision.DetectedEmotion{}
	}

	emotions := make([]decision.DetectedEmotion, 0, len(catalog))
	for _, c := range catalog {
		n := c.Words.Count(text)
		if n == 0 {
			continue
		}
		emotions = append(emotions, decision.DetectedEmotion{
			Type:      c.Type,
			Label:     c.Label,
			Intensity: intensity(n),
		})
	}

	sort.SliceStable(emotions, func(i, j int) bool {
		return emotions[i].Intensity > emotions[j].Intensity
	})
	return emotions
}

func intensity(matches int) float64 {
	return math.Min(float64(matches)/matchesForFull, 1)
}

// Dominant returns the strongest emotion in text, or nil.
func Dominant(text string) *decision.DetectedEmotion {
	return dominantOf(Detect(text))
}

func dominantOf(emotions []decision.DetectedEmotion) *decision.DetectedEmotion {
	if len(emotions) == 0 {
		return nil
	}
	d := emotions[0]
	return &d
}

// AnalyzeOptions runs Detect over each option's reflection, keeping option order.
func AnalyzeOptions(options []decision.Option) []decision.EmotionalAnalysis {
	out := make([]decision.EmotionalAnalysis, len(options))
	for i, o := range options {
		emotions := Detect(o.EmotionalText)
		out[i] = decision.EmotionalAnalysis{
			OptionID:        o.ID,
			OptionName:      o.Name,
			Emotions:        emotions,
			DominantEmotion: dominantOf(emotions),
		}
	}
	return out
}

// FindAnalysis returns the analysis for optionID.
func FindAnalysis(analyses []decision.EmotionalAnalysis, optionID string) (decision.EmotionalAnalysis, bool) {
	for _, a := range analyses {
		if a.OptionID == optionID {
			return a, true
		}
	}
	return decision.EmotionalAnalysis{}, false
}

// OptionInsight is the per-option reading shown next to a reflection.
type OptionInsight struct {
	Emotions        []decision.DetectedEmotion `json:"emotions"`
	DominantEmotion *decision.DetectedEmotion  `json:"dominantEmotion"`
	Insight         string                     `json:"insight"`
}

// Insight analyzes one option and phrases its dominant emotion.
func Insight(o decision.Option) OptionInsight {
	emotions := Detect(o.EmotionalText)
	dominant := dominantOf(emotions)
	return OptionInsight{
		Emotions:        emotions,
		DominantEmotion: dominant,
		Insight:         insightText(o.Name, dominant),
	}
}

func insightText(name string, dominant *decision.DetectedEmotion) string {
	if dominant == nil {
		return fmt.Sprintf("You seem to have a clear-headed perspective on \"%s\". Proceed with rational consideration.", name)
	}
	switch dominant.Type {
	case decision.Fear:
		return fmt.Sprintf("There are some concerns and worries about \"%s\". Consider if these fears are realistic or if they might be holding you back.", name)
	case decision.Excitement:
		return fmt.Sprintf("You feel genuine excitement about \"%s\". This positive energy is worth noting, but ensure you're also considering practical aspects.", name)
	case decision.Guilt:
		return fmt.Sprintf("There's some guilt tied to \"%s\". Consider what truly matters to you versus what others expect.", name)
	case decision.Relief:
		return fmt.Sprintf("\"%s\" brings a sense of relief and peace, which can be valuable for mental well-being.", name)
	case decision.Uncertainty:
		return fmt.Sprintf("You have mixed feelings about \"%s\". That's normal for important decisions - clarity often comes with more information.", name)
	default:
		panic(fmt.Sprintf("emotion: unhandled type %q", dominant.Type))
	}
}
