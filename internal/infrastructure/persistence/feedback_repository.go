package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/webshop/backend/internal/domain/feedback"
	"github.com/webshop/backend/internal/domain/shared"
)

// GormFeedbackRepository implements feedback.FeedbackRepository using GORM
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// FindByID finds a feedback entry by ID
func (r *GormFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	var entry feedback.Feedback
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all feedback entries, newest first
func (r *GormFeedbackRepository) FindAll(ctx context.Context) ([]feedback.Feedback, error) {
	var entries []feedback.Feedback
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a feedback entry
func (r *GormFeedbackRepository) Save(ctx context.Context, entry *feedback.Feedback) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Ensure GormFeedbackRepository implements FeedbackRepository
var _ feedback.FeedbackRepository = (*GormFeedbackRepository)(nil)
