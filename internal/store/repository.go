package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("store: not found")

// Repository scopes every read and write to the owning user.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *SavedDecision) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create decision: %w", err)
	}
	return nil
}

// List returns the user's decisions, newest first.
func (r *Repository) List(ctx context.Context, userID uint) ([]SavedDecision, error) {
	out := []SavedDecision{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, userID uint, id uuid.UUID) (*SavedDecision, error) {
	var d SavedDecision
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get decision: %w", err)
	}
	return &d, nil
}

func (r *Repository) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&SavedDecision{})
	if res.Error != nil {
		return fmt.Errorf("delete decision: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDraft upserts the user's draft. Empty drafts are not written and the
// returned bool is false.
func (r *Repository) SaveDraft(ctx context.Context, userID uint, data DraftData) (bool, error) {
	if data.Empty() {
		return false, nil
	}
	draft := Draft{
		UserID:    userID,
		Data:      datatypes.NewJSONType(data),
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&draft).Error
	if err != nil {
		return false, fmt.Errorf("save draft: %w", err)
	}
	return true, nil
}

func (r *Repository) LoadDraft(ctx context.Context, userID uint) (*Draft, error) {
	var d Draft
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return &d, nil
}

func (r *Repository) ClearDraft(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Draft{}).Error; err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
