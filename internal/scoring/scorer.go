package scoring

import (
	"math"
	"sort"

	"decision-coach/internal/decision"
)

// Contribution is one priority's weighted share of an option's total.
type Contribution struct {
	Priority decision.Priority `json:"priority"`
	Weighted int               `json:"weighted"`
}

// ScoredOption is an option with its weighted total and per-priority breakdown.
type ScoredOption struct {
	Option     decision.Option `json:"option"`
	TotalScore int             `json:"totalScore"`
	Breakdown  []Contribution  `json:"breakdown"`
}

// Result is a ranking plus the ceiling used for percentages.
type Result struct {
	Ranked      []ScoredOption `json:"ranked"`
	MaxPossible int            `json:"maxPossible"`
}

// Score ranks options by the sum of rating x priority weight. Missing ratings
// count as 0. Ties keep input order.
func Score(options []decision.Option, priorities []decision.Priority) Result {
	ranked := make([]ScoredOption, len(options))
	for i, o := range options {
		breakdown := make([]Contribution, len(priorities))
		total := 0
		for j, p := range priorities {
			w := o.Score(p.ID) * p.Value
			breakdown[j] = Contribution{Priority: p, Weighted: w}
			total += w
		}
		ranked[i] = ScoredOption{Option: o, TotalScore: total, Breakdown: breakdown}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	return Result{Ranked: ranked, MaxPossible: MaxPossible(priorities)}
}

// MaxPossible is the total a perfect option would reach.
func MaxPossible(priorities []decision.Priority) int {
	sum := 0
	for _, p := range priorities {
		sum += p.Value * decision.MaxRating
	}
	return sum
}

// Percentage rounds total/max to a whole percent; 0 when max is 0.
func Percentage(total, maxPossible int) int {
	if maxPossible <= 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(maxPossible) * 100))
}

// Winner returns the top-ranked option.
func (r Result) Winner() (ScoredOption, bool) {
	if len(r.Ranked) == 0 {
		return ScoredOption{}, false
	}
	return r.Ranked[0], true
}

// Percentage of a scored option against this result's ceiling.
func (r Result) Percentage(s ScoredOption) int {
	return Percentage(s.TotalScore, r.MaxPossible)
}

// TopBreakdown returns the n largest contributions, ties in priority order.
func (s ScoredOption) TopBreakdown(n int) []Contribution {
	sorted := make([]Contribution, len(s.Breakdown))
	copy(sorted, s.Breakdown)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weighted > sorted[j].Weighted
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
