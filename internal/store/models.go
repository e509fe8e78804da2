// Package store persists saved decisions and the per-user wizard draft.
package store

import (
	"strings"
	"time"

	"decision-coach/internal/decision"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ScoreSummary struct {
	OptionID   string `json:"optionId"`
	OptionName string `json:"optionName"`
	TotalScore int    `json:"totalScore"`
	Percentage int    `json:"percentage"`
}

// Recommendation is the frozen outcome stored with a decision.
type Recommendation struct {
	WinnerID         string         `json:"winnerId"`
	WinnerName       string         `json:"winnerName"`
	Scores           []ScoreSummary `json:"scores"`
	LogicalInsight   string         `json:"logicalInsight"`
	EmotionalInsight string         `json:"emotionalInsight"`
}

type SavedDecision struct {
	ID              uuid.UUID                               `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID          uint                                    `gorm:"index;not null" json:"userId"`
	Decision        string                                  `gorm:"not null" json:"decision"`
	Options         datatypes.JSONType[[]decision.Option]   `json:"options"`
	Priorities      datatypes.JSONType[[]decision.Priority] `json:"priorities"`
	Recommendation  datatypes.JSONType[Recommendation]      `json:"recommendation"`
	ConfidenceScore *int                                    `json:"confidenceScore,omitempty"`
	ReflectionNotes string                                  `json:"reflectionNotes,omitempty"`
	CreatedAt       time.Time                               `json:"createdAt"`
	UpdatedAt       time.Time                               `json:"updatedAt"`
}

func (SavedDecision) TableName() string { return "saved_decisions" }

func (d *SavedDecision) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DraftData is the in-progress wizard state.
type DraftData struct {
	Decision        string              `json:"decision"`
	Options         []decision.Option   `json:"options"`
	Priorities      []decision.Priority `json:"priorities"`
	CurrentStep     int                 `json:"currentStep"`
	ConfidenceScore *int                `json:"confidenceScore,omitempty"`
	ReflectionNotes string              `json:"reflectionNotes,omitempty"`
}

// Empty reports whether the draft has nothing worth keeping yet.
func (d DraftData) Empty() bool {
	return strings.TrimSpace(d.Decision) == "" && len(d.Options) == 0
}

// Draft holds at most one row per user.
type Draft struct {
	ID        uint                          `gorm:"primaryKey" json:"-"`
	UserID    uint                          `gorm:"uniqueIndex;not null" json:"userId"`
	Data      datatypes.JSONType[DraftData] `json:"data"`
	UpdatedAt time.Time                     `json:"updatedAt"`
}

func (Draft) TableName() string { return "decision_drafts" }
