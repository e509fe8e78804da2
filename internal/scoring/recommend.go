package scoring

import "fmt"

// Strength grades how far the winner is ahead of the runner-up.
type Strength string

const (
	StrengthClear Strength = "clear"
	StrengthEdge  Strength = "edge"
	StrengthClose Strength = "close"
)

const (
	clearMargin = 15.0
	edgeMargin  = 5.0
)

type Recommendation struct {
	WinnerID      string   `json:"winnerId"`
	WinnerName    string   `json:"winnerName"`
	RunnerUpName  string   `json:"runnerUpName,omitempty"`
	MarginPercent float64  `json:"marginPercent"`
	Strength      Strength `json:"strength"`
	Text          string   `json:"text"`
}

// Recommend phrases the ranking as a recommendation. The margin is the gap
// between the top two totals as a percent of the maximum possible score.
func Recommend(r Result) (Recommendation, bool) {
	winner, ok := r.Winner()
	if !ok {
		return Recommendation{}, false
	}
	rec := Recommendation{WinnerID: winner.Option.ID, WinnerName: winner.Option.Name}

	if len(r.Ranked) < 2 {
		rec.Strength = StrengthClear
		rec.Text = fmt.Sprintf("\"%s\" is your only option scored so far.", winner.Option.Name)
		return rec, true
	}

	second := r.Ranked[1]
	rec.RunnerUpName = second.Option.Name
	if r.MaxPossible > 0 {
		rec.MarginPercent = float64(winner.TotalScore-second.TotalScore) / float64(r.MaxPossible) * 100
	}

	switch {
	case rec.MarginPercent > clearMargin:
		rec.Strength = StrengthClear
		rec.Text = fmt.Sprintf("\"%s\" stands out clearly as your best choice based on your priorities.", winner.Option.Name)
	case rec.MarginPercent > edgeMargin:
		rec.Strength = StrengthEdge
		rec.Text = fmt.Sprintf("\"%s\" edges ahead, though \"%s\" is also a strong option.", winner.Option.Name, second.Option.Name)
	default:
		rec.Strength = StrengthClose
		rec.Text = fmt.Sprintf("It's a close call between \"%s\" and \"%s\". Trust your intuition.", winner.Option.Name, second.Option.Name)
	}
	return rec, true
}
