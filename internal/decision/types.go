package decision

// Priority is a named decision factor with an importance weight (1-5).
type Priority struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Value       int    `json:"value"`
}

// Option is a candidate choice rated against each priority.
// Scores maps Priority.ID to a 1-5 rating and may be partial.
type Option struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	EmotionalText string         `json:"emotionalText"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	Pros          []string       `json:"pros"`
	Cons          []string       `json:"cons"`
	Scores        map[string]int `json:"scores"`
}

// Score returns the rating for a priority, 0 when missing.
func (o Option) Score(priorityID string) int {
	if o.Scores == nil {
		return 0
	}
	return o.Scores[priorityID]
}

// EmotionType is the closed set of emotions the detector recognizes.
type EmotionType string

const (
	Fear        EmotionType = "fear"
	Excitement  EmotionType = "excitement"
	Guilt       EmotionType = "guilt"
	Relief      EmotionType = "relief"
	Uncertainty EmotionType = "uncertainty"
)

// AllEmotionTypes lists every emotion in catalog order.
func AllEmotionTypes() []EmotionType {
	return []EmotionType{Fear, Excitement, Guilt, Relief, Uncertainty}
}

// Valid reports whether t is one of the known emotions.
func (t EmotionType) Valid() bool {
	switch t {
	case Fear, Excitement, Guilt, Relief, Uncertainty:
		return true
	}
	return false
}

type DetectedEmotion struct {
	Type      EmotionType `json:"type"`
	Label     string      `json:"label"`
	Intensity float64     `json:"intensity"`
}

// EmotionalAnalysis aggregates detected emotions for one option.
// Emotions are ordered by intensity, highest first.
type EmotionalAnalysis struct {
	OptionID        string            `json:"optionId"`
	OptionName      string            `json:"optionName"`
	Emotions        []DetectedEmotion `json:"emotions"`
	DominantEmotion *DetectedEmotion  `json:"dominantEmotion"`
}

// Strongest returns the highest intensity recorded for t, 0 when absent.
func (a EmotionalAnalysis) Strongest(t EmotionType) float64 {
	best := 0.0
	for _, e := range a.Emotions {
		if e.Type == t && e.Intensity > best {
			best = e.Intensity
		}
	}
	return best
}

// Has reports whether an emotion of type t exceeds the threshold.
func (a EmotionalAnalysis) Has(t EmotionType, threshold float64) bool {
	for _, e := range a.Emotions {
		if e.Type == t && e.Intensity > threshold {
			return true
		}
	}
	return false
}

type CognitivePattern struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Detected    bool   `json:"detected"`
}

// DefaultPriorities returns a fresh copy of the starter priority set.
func DefaultPriorities() []Priority {
	return []Priority{
		{ID: "money", Label: "Money", Description: "Financial impact", Value: 3},
		{ID: "happiness", Label: "Happiness", Description: "Joy and fulfillment", Value: 3},
		{ID: "growth", Label: "Growth", Description: "Personal development", Value: 3},
		{ID: "stability", Label: "Stability", Description: "Security and predictability", Value: 3},
		{ID: "risk", Label: "Risk Tolerance", Description: "Openness to uncertainty", Value: 3},
	}
}

// FindPriority looks a priority up by id.
func FindPriority(priorities []Priority, id string) (Priority, bool) {
	for _, p := range priorities {
		if p.ID == id {
			return p, true
		}
	}
	return Priority{}, false
}

// Others returns every option except the one with winnerID, in input order.
func Others(options []Option, winnerID string) []Option {
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if o.ID != winnerID {
			out = append(out, o)
		}
	}
	return out
}

// Names returns option names in order.
func Names(options []Option) []string {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = o.Name
	}
	return names
}
