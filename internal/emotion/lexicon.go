package emotion

import (
	"decision-coach/internal/decision"
	"decision-coach/internal/lexicon"
)

// category pairs an emotion with its display label and phrase list.
type category struct {
	Type  decision.EmotionType
	Label string
	Words lexicon.List
}

// catalog is the single editable emotion lexicon. Table order is the
// tie-break order for equal intensities.
var catalog = []category{
	{
		Type:  decision.Fear,
		Label: "Fear",
		Words: lexicon.New(string(decision.Fear),
			"scared", "afraid", "worried", "anxious", "nervous", "terrified",
			"panic", "dread", "frightened", "uneasy", "tense", "stress",
			"what if", "might fail", "risky", "dangerous", "uncertain", "doubt",
		),
	},
	{
		Type:  decision.Excitement,
		Label: "Excitement",
		Words: lexicon.New(string(decision.Excitement),
			"excited", "thrilled", "eager", "enthusiastic", "pumped", "energized",
			"can't wait", "amazing", "awesome", "love", "passionate", "inspired",
			"hopeful", "optimistic", "dream", "opportunity", "adventure", "new",
		),
	},
	{
		Type:  decision.Guilt,
		Label: "Guilt",
		Words: lexicon.New(string(decision.Guilt),
			"guilty", "selfish", "wrong", "should", "shouldn't", "bad",
			"letting down", "disappointing", "responsible", "obligation", "owe",
			"feel terrible", "regret", "blame", "fault", "burden",
		),
	},
	{
		Type:  decision.Relief,
		Label: "Relief",
		Words: lexicon.New(string(decision.Relief),
			"relief", "relieved", "free", "freedom", "peaceful", "calm",
			"weight off", "finally", "escape", "release", "breathe", "easy",
			"comfortable", "safe", "secure", "settled", "done with",
		),
	},
	{
		Type:  decision.Uncertainty,
		Label: "Uncertainty",
		Words: lexicon.New(string(decision.Uncertainty),
			"unsure", "confused", "torn", "conflicted", "mixed", "ambivalent",
			"don't know", "not sure", "maybe", "unclear", "complicated", "complex",
			"both", "either way", "depends", "hard to say", "undecided",
		),
	},
}

// Label returns the display label for an emotion type.
func Label(t decision.EmotionType) string {
	for _, c := range catalog {
		if c.Type == t {
			return c.Label
		}
	}
	return string(t)
}

// Keywords returns a copy of the phrase list for t.
func Keywords(t decision.EmotionType) []string {
	for _, c := range catalog {
		if c.Type == t {
			out := make([]string, len(c.Words.Phrases))
			copy(out, c.Words.Phrases)
			return out
		}
	}
	return nil
}
