// Package synthesis composes the scored options and the emotional signal into
// an eight-section narrative report.
package synthesis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"decision-coach/internal/decision"
	"decision-coach/internal/emotion"
	"decision-coach/internal/lexicon"
)

const (
	fallbackPro    = "Some positive aspects to consider"
	fallbackCon    = "Some trade-offs to be aware of"
	fallbackBackup = "Other options"

	strongScore = 4
	weakScore   = 2
)

type OptionAnalysis struct {
	Option        string   `json:"option"`
	Pros          []string `json:"pros"`
	Cons          []string `json:"cons"`
	LikelyOutcome string   `json:"likelyOutcome"`
}

// Choice names an option together with the reason it was picked.
type Choice struct {
	Option    string `json:"option"`
	Reasoning string `json:"reasoning"`
}

// Analysis is the full report. It has no lifecycle of its own and is rebuilt
// from the current options and priorities on every request.
type Analysis struct {
	SituationSummary         string           `json:"situationSummary"`
	EmotionalInsight         string           `json:"emotionalInsight"`
	KeyFactorsAndConstraints []string         `json:"keyFactorsAndConstraints"`
	OptionsAnalysis          []OptionAnalysis `json:"optionsAnalysis"`
	RisksAndTradeoffs        []string         `json:"risksAndTradeoffs"`
	RecommendedDecision      Choice           `json:"recommendedDecision"`
	BackupPlan               Choice           `json:"backupPlan"`
	ImmediateNextSteps       []string         `json:"immediateNextSteps"`
}

type cue struct {
	words lexicon.List
	text  string
}

var (
	positiveCues = []cue{
		{lexicon.New("connection", "good", "great", "love", "excit"), "Strong positive emotional connection"},
		{lexicon.New("growth", "opportunity", "grow", "learn"), "Growth potential"},
		{lexicon.New("stability", "safe", "secure", "stable"), "Provides stability and security"},
	}
	negativeCues = []cue{
		{lexicon.New("concern", "worr", "afraid", "risk", "scared"), "Potential risks or concerns"},
		{lexicon.New("cost", "expensive", "cost", "money"), "Financial implications to consider"},
		{lexicon.New("effort", "hard", "difficult", "challenge"), "Requires significant effort"},
	}

	timeCues         = lexicon.New("time", "time", "when", "deadline")
	budgetCues       = lexicon.New("budget", "money", "cost", "budget", "afford")
	relationshipCues = lexicon.New("relationship", "family", "partner", "relationship")
	careerCues       = lexicon.New("career", "career", "job", "work")
	financeCues      = lexicon.New("finance", "money", "invest", "financial")
)

// Analyze builds the report for decisionText with winner as the top-ranked
// option. winner need not be a member of options.
func Analyze(decisionText string, options []decision.Option, priorities []decision.Priority, winner decision.Option) Analysis {
	analyses := make([]OptionAnalysis, 0, len(options))
	for _, o := range options {
		analyses = append(analyses, analyzeOption(o, priorities))
	}

	backup := fallbackBackup
	if others := decision.Others(options, winner.ID); len(others) > 0 {
		backup = others[0].Name
	}

	return Analysis{
		SituationSummary: fmt.Sprintf("You're deciding: \"%s\". After evaluating your options against your priorities, \"%s\" has emerged as the best fit.",
			decisionText, winner.Name),
		EmotionalInsight:         emotionalInsight(winner),
		KeyFactorsAndConstraints: keyFactors(decisionText, priorities),
		OptionsAnalysis:          analyses,
		RisksAndTradeoffs:        risks(decisionText, options, winner),
		RecommendedDecision: Choice{
			Option: winner.Name,
			Reasoning: fmt.Sprintf("Based on your scoring across %d priorities and your emotional reflections, \"%s\" best aligns with what matters to you.",
				len(priorities), winner.Name),
		},
		BackupPlan: Choice{
			Option:    backup,
			Reasoning: "Keep other options in mind as circumstances may change or new information may emerge.",
		},
		ImmediateNextSteps: nextSteps(decisionText, winner),
	}
}

func analyzeOption(o decision.Option, priorities []decision.Priority) OptionAnalysis {
	var pros, cons []string
	if o.EmotionalText != "" {
		for _, c := range positiveCues {
			if c.words.Any(o.EmotionalText) {
				pros = append(pros, c.text)
			}
		}
		for _, c := range negativeCues {
			if c.words.Any(o.EmotionalText) {
				cons = append(cons, c.text)
			}
		}
	}

	for _, id := range scoreKeys(o, priorities) {
		label := id
		if p, ok := decision.FindPriority(priorities, id); ok && p.Label != "" {
			label = p.Label
		}
		switch s := o.Scores[id]; {
		case s >= strongScore:
			pros = append(pros, "Strong in "+label)
		case s <= weakScore:
			cons = append(cons, "Weak in "+label)
		}
	}

	if len(pros) == 0 {
		pros = []string{fallbackPro}
	}
	if len(cons) == 0 {
		cons = []string{fallbackCon}
	}
	return OptionAnalysis{
		Option:        o.Name,
		Pros:          pros,
		Cons:          cons,
		LikelyOutcome: likelyOutcome(emotion.Dominant(o.EmotionalText)),
	}
}

// scoreKeys returns the option's scored priority ids: known priorities in
// priority order, then any unknown ids sorted.
func scoreKeys(o decision.Option, priorities []decision.Priority) []string {
	keys := make([]string, 0, len(o.Scores))
	seen := make(map[string]bool, len(priorities))
	for _, p := range priorities {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if _, ok := o.Scores[p.ID]; ok {
			keys = append(keys, p.ID)
		}
	}
	var extra []string
	for id := range o.Scores {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func likelyOutcome(dominant *decision.DetectedEmotion) string {
	if dominant == nil {
		return "This option appears to have a reasonable chance of success based on available information."
	}
	switch dominant.Type {
	case decision.Excitement:
		return "Likely to bring energy and enthusiasm, but ensure practical details are addressed."
	case decision.Fear:
		return "May involve some anxiety initially, but could lead to growth if fears are managed well."
	case decision.Relief:
		return "Expected to provide comfort and peace of mind, which is valuable for wellbeing."
	case decision.Guilt:
		return "May involve complex emotions - ensure the decision aligns with your true values."
	case decision.Uncertainty:
		return "Outcomes may vary based on how well you prepare and adapt as you go."
	default:
		panic(fmt.Sprintf("synthesis: unknown emotion type %q", dominant.Type))
	}
}

func emotionalInsight(winner decision.Option) string {
	d := emotion.Dominant(winner.EmotionalText)
	if d == nil {
		return fmt.Sprintf("You appear to have a relatively calm and rational perspective on \"%s.\" This balanced emotional state is helpful for clear decision-making.", winner.Name)
	}

	var tail string
	switch d.Type {
	case decision.Excitement:
		tail = "This positive energy is encouraging, but ensure it doesn't cloud your judgment."
	case decision.Fear:
		tail = "These concerns are valid and should be addressed before proceeding."
	case decision.Guilt, decision.Relief, decision.Uncertainty:
		tail = "This emotional response provides valuable insight into your true feelings."
	default:
		panic(fmt.Sprintf("synthesis: unknown emotion type %q", d.Type))
	}
	return fmt.Sprintf("Your feelings about \"%s\" show %s with %d%% intensity. %s",
		winner.Name, strings.ToLower(d.Label), int(math.Round(d.Intensity*100)), tail)
}

func keyFactors(decisionText string, priorities []decision.Priority) []string {
	var factors []string
	if timeCues.Any(decisionText) {
		factors = append(factors, "Time constraints and deadlines")
	}
	if budgetCues.Any(decisionText) {
		factors = append(factors, "Financial resources and budget")
	}
	if relationshipCues.Any(decisionText) {
		factors = append(factors, "Impact on relationships and family")
	}
	return append(factors,
		fmt.Sprintf("Your %d key priorities", len(priorities)),
		"Current personal circumstances",
		"Long-term goals and values",
	)
}

func risks(decisionText string, options []decision.Option, winner decision.Option) []string {
	others := decision.Names(decision.Others(options, winner.ID))
	out := []string{
		fmt.Sprintf("Choosing \"%s\" means not pursuing %s", winner.Name, strings.Join(others, " or ")),
	}
	if careerCues.Any(decisionText) {
		out = append(out,
			"Career decisions have long-term impact and are not easily reversible",
			"Opportunity cost - time spent on this cannot be spent elsewhere",
		)
	}
	if financeCues.Any(decisionText) {
		out = append(out,
			"Financial investments carry risk of loss",
			"Market conditions may change unpredictably",
		)
	}
	return append(out,
		"Plans may need adjustment based on new information",
		"External factors outside your control may affect outcomes",
	)
}

func nextSteps(decisionText string, winner decision.Option) []string {
	steps := []string{
		fmt.Sprintf("Create a detailed plan for implementing \"%s\"", winner.Name),
		"Set specific goals and timeline",
		"Identify any additional resources or support needed",
	}
	if careerCues.Any(decisionText) {
		steps = append(steps,
			"Update your resume or portfolio if applicable",
			"Reach out to mentors or trusted advisors for feedback",
		)
	}
	if financeCues.Any(decisionText) {
		steps = append(steps,
			"Review your budget and financial situation",
			"Consult with a financial advisor if needed",
		)
	}
	return append(steps,
		"Set a review date to evaluate progress",
		"Be prepared to adjust your approach as needed",
	)
}
