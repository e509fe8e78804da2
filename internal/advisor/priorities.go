// Package advisor suggests priorities before scoring and challenge questions
// after it, both from fixed keyword-routed templates.
package advisor

import (
	"decision-coach/internal/decision"
	"decision-coach/internal/lexicon"
)

const GroupGeneral = "general"

// Suggestion is a starter set of priorities with a one-line rationale.
type Suggestion struct {
	Group               string              `json:"group"`
	SuggestedPriorities []decision.Priority `json:"suggestedPriorities"`
	Rationale           string              `json:"rationale"`
}

type patternGroup struct {
	keywords   lexicon.List
	priorities []decision.Priority
	rationale  string
}

// patternGroups is checked in order; the first group with any keyword wins.
var patternGroups = []patternGroup{
	{
		keywords: lexicon.New("career",
			"job", "career", "work", "promotion", "salary", "raise", "company", "boss",
			"team", "office", "remote", "startup", "freelance", "entrepreneur"),
		priorities: []decision.Priority{
			{ID: "salary", Label: "Compensation", Description: "Income and financial rewards", Value: 4},
			{ID: "growth", Label: "Career Growth", Description: "Learning, skills, and advancement opportunities", Value: 4},
			{ID: "work-life", Label: "Work-Life Balance", Description: "Time for personal life and wellbeing", Value: 4},
			{ID: "stability", Label: "Job Security", Description: "Stability and security of employment", Value: 3},
			{ID: "culture", Label: "Company Culture", Description: "Values, environment, and team dynamics", Value: 3},
		},
		rationale: "For career decisions, consider both immediate rewards and long-term growth potential.",
	},
	{
		keywords: lexicon.New("financial",
			"invest", "money", "save", "spend", "budget", "debt", "loan", "mortgage",
			"retirement", "stock", "crypto", "buy", "sell"),
		priorities: []decision.Priority{
			{ID: "return", Label: "Financial Return", Description: "Potential gain or loss", Value: 5},
			{ID: "risk", Label: "Risk Level", Description: "How much you could lose", Value: 4},
			{ID: "liquidity", Label: "Liquidity", Description: "How quickly you can access your money", Value: 3},
			{ID: "time", Label: "Time Horizon", Description: "Short-term vs long-term considerations", Value: 3},
			{ID: "effort", Label: "Management Effort", Description: "Time and attention required", Value: 2},
		},
		rationale: "Financial decisions should balance potential returns against acceptable risk levels.",
	},
	{
		keywords: lexicon.New("relationship",
			"relationship", "partner", "friend", "dating", "marriage", "breakup",
			"family", "parent", "child", "romantic", "love"),
		priorities: []decision.Priority{
			{ID: "happiness", Label: "Emotional Fulfillment", Description: "Joy and emotional connection", Value: 5},
			{ID: "growth", Label: "Personal Growth", Description: "How you grow together", Value: 4},
			{ID: "values", Label: "Value Alignment", Description: "Shared values and life goals", Value: 4},
			{ID: "independence", Label: "Independence", Description: "Maintaining your own identity", Value: 3},
			{ID: "stability", Label: "Stability", Description: "Predictability and security", Value: 3},
		},
		rationale: "Relationship decisions involve balancing emotional needs with practical compatibility.",
	},
	{
		keywords: lexicon.New("health",
			"health", "exercise", "diet", "doctor", "treatment", "surgery", "medication",
			"fitness", "wellness", "mental health"),
		priorities: []decision.Priority{
			{ID: "effectiveness", Label: "Effectiveness", Description: "How well it works", Value: 5},
			{ID: "risk", Label: "Side Effects/Risk", Description: "Potential negative impacts", Value: 4},
			{ID: "time", Label: "Time Commitment", Description: "How long it will take", Value: 3},
			{ID: "cost", Label: "Cost", Description: "Financial implications", Value: 3},
			{ID: "sustainability", Label: "Sustainability", Description: "Can you maintain this long-term", Value: 3},
		},
		rationale: "Health decisions should prioritize effectiveness while considering lifestyle impact and sustainability.",
	},
	{
		keywords: lexicon.New("location",
			"move", "relocate", "city", "town", "country", "apartment", "house", "rent",
			"neighborhood", "area"),
		priorities: []decision.Priority{
			{ID: "cost", Label: "Cost of Living", Description: "Housing, food, transportation expenses", Value: 4},
			{ID: "quality", Label: "Quality of Life", Description: "Safety, amenities, community", Value: 4},
			{ID: "opportunities", Label: "Career Opportunities", Description: "Job market and professional growth", Value: 4},
			{ID: "weather", Label: "Climate/Weather", Description: "Living conditions and comfort", Value: 3},
			{ID: "social", Label: "Social Network", Description: "Proximity to family and friends", Value: 3},
		},
		rationale: "Location decisions involve balancing costs with lifestyle benefits and opportunities.",
	},
}

var generalPriorities = []decision.Priority{
	{ID: "time", Label: "Time Investment", Description: "How much time this will require", Value: 3},
	{ID: "effort", Label: "Effort Required", Description: "Physical or mental energy needed", Value: 3},
	{ID: "cost", Label: "Financial Cost", Description: "Money required for this decision", Value: 3},
	{ID: "impact", Label: "Long-term Impact", Description: "How this affects your future", Value: 4},
	{ID: "alignment", Label: "Value Alignment", Description: "Match with your core values", Value: 4},
}

const generalRationale = "Based on your decision, these general priorities will help you evaluate your options objectively."

// SmartPriorities routes the decision text to the first matching pattern
// group, falling back to a general set. Values come from the template.
func SmartPriorities(decisionText string) Suggestion {
	for _, g := range patternGroups {
		if g.keywords.Any(decisionText) {
			return Suggestion{
				Group:               g.keywords.Name,
				SuggestedPriorities: clonePriorities(g.priorities),
				Rationale:           g.rationale,
			}
		}
	}
	return Suggestion{
		Group:               GroupGeneral,
		SuggestedPriorities: clonePriorities(generalPriorities),
		Rationale:           generalRationale,
	}
}

// Groups lists the pattern group names in routing order.
func Groups() []string {
	names := make([]string, 0, len(patternGroups)+1)
	for _, g := range patternGroups {
		names = append(names, g.keywords.Name)
	}
	return append(names, GroupGeneral)
}

func clonePriorities(in []decision.Priority) []decision.Priority {
	out := make([]decision.Priority, len(in))
	copy(out, in)
	return out
}
