package advisor

// EmotionalPrompt guides the free-text reflection for one option.
type EmotionalPrompt struct {
	Placeholder string `json:"placeholder"`
	HelperText  string `json:"helperText"`
}

var emotionalPrompts = map[string]EmotionalPrompt{
	"career": {
		Placeholder: "What excites you about this option? What worries you?",
		HelperText:  "Consider growth potential, work-life balance, and fulfillment",
	},
	"financial": {
		Placeholder: "How would this impact your financial security?",
		HelperText:  "Think about short-term sacrifices vs. long-term gains",
	},
	"relationships": {
		Placeholder: "How does this align with your values and long-term vision?",
		HelperText:  "Consider trust, communication, and shared goals",
	},
	"lifestyle": {
		Placeholder: "What would you regret more - doing this or not doing it?",
		HelperText:  "Think about your ideal day-to-day life and what truly matters",
	},
	"health": {
		Placeholder: "How would this affect your wellbeing and energy levels?",
		HelperText:  "Consider physical, mental, and emotional health impacts",
	},
	GroupGeneral: {
		Placeholder: "How does this option make you feel?",
		HelperText:  "Describe your gut reaction, fears, and hopes",
	},
}

// PromptFor returns the reflection prompt for a category, general when unknown.
func PromptFor(category string) EmotionalPrompt {
	if p, ok := emotionalPrompts[category]; ok {
		return p
	}
	return emotionalPrompts[GroupGeneral]
}
