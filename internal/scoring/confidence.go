package scoring

import (
	"errors"
	"fmt"
)

var ErrConfidenceRange = errors.New("confidence must be between 1 and 10")

type ConfidenceLevel struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

var confidenceLevels = []ConfidenceLevel{
	{Min: 1, Max: 3, Label: "Uncertain"},
	{Min: 4, Max: 6, Label: "Moderate"},
	{Min: 7, Max: 8, Label: "Confident"},
	{Min: 9, Max: 10, Label: "Very Confident"},
}

type ConfidenceReading struct {
	Score   int             `json:"score"`
	Level   ConfidenceLevel `json:"level"`
	Insight string          `json:"insight"`
}

// Confidence grades a self-reported 1-10 confidence rating.
func Confidence(score int) (ConfidenceReading, error) {
	if score < 1 || score > 10 {
		return ConfidenceReading{}, fmt.Errorf("%w: got %d", ErrConfidenceRange, score)
	}
	level := confidenceLevels[0]
	for _, l := range confidenceLevels {
		if score >= l.Min && score <= l.Max {
			level = l
			break
		}
	}

	var insight string
	switch {
	case score < 5:
		insight = "You seem uncertain. Consider reviewing your priorities or taking more time."
	case score <= 7:
		insight = "Moderate confidence. Trust your analysis but stay open to new information."
	default:
		insight = "You feel confident in this direction. Trust your decision."
	}
	return ConfidenceReading{Score: score, Level: level, Insight: insight}, nil
}
