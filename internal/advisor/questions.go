package advisor

import (
	"fmt"
	"strings"

	"decision-coach/internal/decision"
	"decision-coach/internal/lexicon"
)

// Category groups challenge questions by what they probe.
type Category string

const (
	CategoryAssumptions  Category = "assumptions"
	CategoryRisks        Category = "risks"
	CategoryAlternatives Category = "alternatives"
	CategoryLongTerm     Category = "long-term"
)

// MaxQuestions caps ChallengeQuestions output.
const MaxQuestions = 6

type Question struct {
	Question string   `json:"question"`
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
}

var financeCues = lexicon.New("finance", "money", "financial", "salary")

// ChallengeQuestions builds devil's-advocate prompts against the current
// winner. Order is fixed by construction and the result is cut to six.
func ChallengeQuestions(decisionText string, options []decision.Option, winner decision.Option) []Question {
	qs := make([]Question, 0, 8)

	qs = append(qs, Question{
		Question: fmt.Sprintf("What evidence do you have that \"%s\" will actually work out as planned?", winner.Name),
		Category: CategoryAssumptions,
		Icon:     "lightbulb",
	})
	if financeCues.Any(decisionText) {
		qs = append(qs, Question{
			Question: "Are you assuming the financial situation will stay the same? What if costs are higher than expected?",
			Category: CategoryAssumptions,
			Icon:     "alert-triangle",
		})
	}

	qs = append(qs,
		Question{
			Question: fmt.Sprintf("What's the worst-case scenario with \"%s\" and could you handle it?", winner.Name),
			Category: CategoryRisks,
			Icon:     "shield",
		},
		Question{
			Question: fmt.Sprintf("What risks are you not seeing because you're excited about \"%s\"?", winner.Name),
			Category: CategoryRisks,
			Icon:     "eye-off",
		},
	)

	if others := decision.Others(options, winner.ID); len(others) > 0 {
		qs = append(qs, Question{
			Question: fmt.Sprintf("What would need to be true for %s to actually be better than \"%s\"?",
				strings.Join(decision.Names(others), ", "), winner.Name),
			Category: CategoryAlternatives,
			Icon:     "git-branch",
		})
	}
	qs = append(qs, Question{
		Question: "Is there a third option you haven't considered yet that combines the best of both?",
		Category: CategoryAlternatives,
		Icon:     "plus-circle",
	})

	qs = append(qs,
		Question{
			Question: fmt.Sprintf("Will you still be happy with \"%s\" 5 years from now?", winner.Name),
			Category: CategoryLongTerm,
			Icon:     "clock",
		},
		Question{
			Question: fmt.Sprintf("How does choosing \"%s\" limit or enable future opportunities?", winner.Name),
			Category: CategoryLongTerm,
			Icon:     "trending-up",
		},
	)

	if len(qs) > MaxQuestions {
		qs = qs[:MaxQuestions]
	}
	return qs
}

// Valid reports whether c is one of the four question categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAssumptions, CategoryRisks, CategoryAlternatives, CategoryLongTerm:
		return true
	}
	return false
}
