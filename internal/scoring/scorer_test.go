package scoring

import (
	"fmt"
	"math/rand"
	"testing"

	"decision-coach/internal/decision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_SwitchJobsScenario(t *testing.T) {
	priorities := decision.DefaultPriorities()
	a := decision.Option{ID: "a", Name: "Stay", Scores: map[string]int{"money": 5, "growth": 4, "happiness": 3, "stability": 4, "risk": 2}}
	b := decision.Option{ID: "b", Name: "Switch", Scores: map[string]int{"money": 2, "growth": 5, "happiness": 4, "stability": 2, "risk": 4}}

	res := Score([]decision.Option{b, a}, priorities)
	require.Len(t, res.Ranked, 2)
	assert.Equal(t, 75, res.MaxPossible)

	// a: (5+4+3+4+2)*3 = 54; b: (2+5+4+2+4)*3 = 51
	assert.Equal(t, "a", res.Ranked[0].Option.ID)
	assert.Equal(t, 54, res.Ranked[0].TotalScore)
	assert.Equal(t, 51, res.Ranked[1].TotalScore)
	assert.Equal(t, 72, res.Percentage(res.Ranked[0]))
	assert.Equal(t, 68, res.Percentage(res.Ranked[1]))
}

func TestScore_MissingScoresAreZero(t *testing.T) {
	priorities := []decision.Priority{{ID: "x", Value: 2}, {ID: "y", Value: 5}}
	res := Score([]decision.Option{{ID: "a", Scores: map[string]int{"x": 4}}, {ID: "b"}}, priorities)
	assert.Equal(t, 8, res.Ranked[0].TotalScore)
	assert.Equal(t, 0, res.Ranked[1].TotalScore)
	assert.Equal(t, 0, res.Ranked[0].Breakdown[1].Weighted)
}

func TestScore_TiesKeepInputOrder(t *testing.T) {
	priorities := []decision.Priority{{ID: "x", Value: 3}}
	opts := []decision.Option{
		{ID: "1", Scores: map[string]int{"x": 2}},
		{ID: "2", Scores: map[string]int{"x": 4}},
		{ID: "3", Scores: map[string]int{"x": 2}},
		{ID: "4", Scores: map[string]int{"x": 4}},
	}
	res := Score(opts, priorities)
	var ids []string
	for _, s := range res.Ranked {
		ids = append(ids, s.Option.ID)
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids)
}

func TestScore_EmptyPriorities(t *testing.T) {
	res := Score([]decision.Option{{ID: "a"}}, nil)
	assert.Equal(t, 0, res.MaxPossible)
	assert.Equal(t, 0, res.Percentage(res.Ranked[0]))
	assert.Equal(t, 0, Percentage(10, 0))
}

func TestScore_NoOptions(t *testing.T) {
	res := Score(nil, decision.DefaultPriorities())
	assert.Empty(t, res.Ranked)
	_, ok := res.Winner()
	assert.False(t, ok)
}

func TestScore_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		var priorities []decision.Priority
		for i := 0; i < 1+r.Intn(6); i++ {
			priorities = append(priorities, decision.Priority{ID: fmt.Sprintf("p%d", i), Value: 1 + r.Intn(5)})
		}
		var options []decision.Option
		for i := 0; i < 1+r.Intn(4); i++ {
			scores := map[string]int{}
			for _, p := range priorities {
				if r.Intn(4) > 0 {
					scores[p.ID] = 1 + r.Intn(5)
				}
			}
			options = append(options, decision.Option{ID: fmt.Sprintf("o%d", i), Scores: scores})
		}

		res := Score(options, priorities)
		sumValues := 0
		for _, p := range priorities {
			sumValues += p.Value * 5
		}
		require.Equal(t, sumValues, res.MaxPossible)

		for i, s := range res.Ranked {
			sum := 0
			for _, c := range s.Breakdown {
				sum += c.Weighted
			}
			require.Equal(t, s.TotalScore, sum)
			require.GreaterOrEqual(t, s.TotalScore, 0)
			require.LessOrEqual(t, s.TotalScore, res.MaxPossible)
			if i+1 < len(res.Ranked) {
				require.GreaterOrEqual(t, s.TotalScore, res.Ranked[i+1].TotalScore)
			}
		}
	}
}

func TestTopBreakdown(t *testing.T) {
	s := ScoredOption{Breakdown: []Contribution{
		{Priority: decision.Priority{ID: "a"}, Weighted: 3},
		{Priority: decision.Priority{ID: "b"}, Weighted: 9},
		{Priority: decision.Priority{ID: "c"}, Weighted: 3},
		{Priority: decision.Priority{ID: "d"}, Weighted: 6},
	}}
	top := s.TopBreakdown(3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Priority.ID)
	assert.Equal(t, "d", top[1].Priority.ID)
	assert.Equal(t, "a", top[2].Priority.ID)
	assert.Equal(t, "a", s.Breakdown[0].Priority.ID, "original order untouched")
	assert.Len(t, s.TopBreakdown(10), 4)
}

func TestRecommend_Strengths(t *testing.T) {
	mk := func(a, b, max int) Result {
		return Result{
			Ranked: []ScoredOption{
				{Option: decision.Option{ID: "a", Name: "A"}, TotalScore: a},
				{Option: decision.Option{ID: "b", Name: "B"}, TotalScore: b},
			},
			MaxPossible: max,
		}
	}
	rec, ok := Recommend(mk(60, 40, 100))
	require.True(t, ok)
	assert.Equal(t, StrengthClear, rec.Strength)
	assert.Contains(t, rec.Text, "stands out clearly")

	rec, _ = Recommend(mk(50, 40, 100))
	assert.Equal(t, StrengthEdge, rec.Strength)
	assert.Contains(t, rec.Text, "\"B\" is also a strong option")

	rec, _ = Recommend(mk(45, 40, 100))
	assert.Equal(t, StrengthClose, rec.Strength)

	rec, _ = Recommend(mk(0, 0, 0))
	assert.Equal(t, StrengthClose, rec.Strength)

	single := Result{Ranked: []ScoredOption{{Option: decision.Option{ID: "a", Name: "A"}}}, MaxPossible: 15}
	rec, ok = Recommend(single)
	require.True(t, ok)
	assert.Equal(t, StrengthClear, rec.Strength)
	assert.Empty(t, rec.RunnerUpName)

	_, ok = Recommend(Result{})
	assert.False(t, ok)
}

func TestConfidence(t *testing.T) {
	cases := []struct {
		score int
		label string
		want  string
	}{
		{1, "Uncertain", "uncertain"},
		{4, "Moderate", "uncertain"},
		{5, "Moderate", "Moderate confidence"},
		{7, "Confident", "Moderate confidence"},
		{8, "Confident", "confident in this direction"},
		{10, "Very Confident", "confident in this direction"},
	}
	for _, tc := range cases {
		got, err := Confidence(tc.score)
		require.NoError(t, err)
		assert.Equal(t, tc.label, got.Level.Label, tc.score)
		assert.Contains(t, got.Insight, tc.want, tc.score)
	}
	_, err := Confidence(0)
	assert.ErrorIs(t, err, ErrConfidenceRange)
	_, err = Confidence(11)
	assert.ErrorIs(t, err, ErrConfidenceRange)
}
