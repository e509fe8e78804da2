package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"decision-coach/internal/decision"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SavedDecision{}, &Draft{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewRepository(db)
}

func sampleOptions() []decision.Option {
	return []decision.Option{
		{ID: "a", Name: "Stay", EmotionalText: "I feel safe and secure", Scores: map[string]int{"money": 5, "happiness": 3, "growth": 3, "stability": 4, "risk": 3}},
		{ID: "b", Name: "Switch", EmotionalText: "I'm excited but scared", Scores: map[string]int{"money": 2, "happiness": 4, "growth": 5, "stability": 2, "risk": 4}},
	}
}

func TestBuildRecommendation(t *testing.T) {
	rec, ok := BuildRecommendation(sampleOptions(), decision.DefaultPriorities())
	require.True(t, ok)
	assert.Equal(t, "a", rec.WinnerID)
	assert.Equal(t, "Stay", rec.WinnerName)
	require.Len(t, rec.Scores, 2)
	assert.Equal(t, ScoreSummary{OptionID: "a", OptionName: "Stay", TotalScore: 54, Percentage: 72}, rec.Scores[0])
	assert.Equal(t, 51, rec.Scores[1].TotalScore)
	assert.Contains(t, rec.LogicalInsight, "It's a close call between \"Stay\" and \"Switch\"")
	assert.Contains(t, rec.EmotionalInsight, "Choosing \"Stay\" brings you a sense of relief and peace.")

	_, ok = BuildRecommendation(nil, decision.DefaultPriorities())
	assert.False(t, ok)
}

func TestRepository_DecisionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	options, priorities := sampleOptions(), decision.DefaultPriorities()
	rec, _ := BuildRecommendation(options, priorities)
	confidence := 8

	d := &SavedDecision{
		UserID:          1,
		Decision:        "Should I switch jobs?",
		Options:         datatypes.NewJSONType(options),
		Priorities:      datatypes.NewJSONType(priorities),
		Recommendation:  datatypes.NewJSONType(rec),
		ConfidenceScore: &confidence,
		ReflectionNotes: "sleep on it",
	}
	require.NoError(t, repo.Create(ctx, d))
	require.NotEqual(t, uuid.Nil, d.ID)

	got, err := repo.Get(ctx, 1, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Should I switch jobs?", got.Decision)
	assert.Equal(t, "Stay", got.Recommendation.Data().WinnerName)
	assert.Len(t, got.Options.Data(), 2)
	assert.Equal(t, 5, got.Options.Data()[0].Scores["money"])
	require.NotNil(t, got.ConfidenceScore)
	assert.Equal(t, 8, *got.ConfidenceScore)

	_, err = repo.Get(ctx, 2, d.ID)
	assert.ErrorIs(t, err, ErrNotFound, "other users cannot read it")
	assert.ErrorIs(t, repo.Delete(ctx, 2, d.ID), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, 1, d.ID))
	_, err = repo.Get(ctx, 1, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &SavedDecision{UserID: 1, Decision: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}
	require.NoError(t, repo.Create(ctx, &SavedDecision{UserID: 2, Decision: "someone else"}))

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Decision)
	assert.Equal(t, "first", list[2].Decision)
}

func TestRepository_DraftUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	saved, err := repo.SaveDraft(ctx, 1, DraftData{Decision: "   "})
	require.NoError(t, err)
	assert.False(t, saved, "empty drafts are skipped")
	_, err = repo.LoadDraft(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err = repo.SaveDraft(ctx, 1, DraftData{Decision: "Move?", CurrentStep: 1})
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = repo.SaveDraft(ctx, 1, DraftData{Decision: "Move to Lisbon?", Options: sampleOptions(), CurrentStep: 3})
	require.NoError(t, err)
	assert.True(t, saved)

	draft, err := repo.LoadDraft(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Move to Lisbon?", draft.Data.Data().Decision)
	assert.Equal(t, 3, draft.Data.Data().CurrentStep)
	assert.Len(t, draft.Data.Data().Options, 2)

	var rows int64
	require.NoError(t, repo.db.Model(&Draft{}).Where("user_id = ?", 1).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	require.NoError(t, repo.ClearDraft(ctx, 1))
	_, err = repo.LoadDraft(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, repo.ClearDraft(ctx, 1), "clearing twice is fine")
}

func TestDraftData_Empty(t *testing.T) {
	assert.True(t, DraftData{}.Empty())
	assert.False(t, DraftData{Options: []decision.Option{{ID: "x"}}}.Empty())
	assert.False(t, DraftData{Decision: "x"}.Empty())
}
