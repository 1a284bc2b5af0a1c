package feedback

import (
	"context"

	"github.com/google/uuid"
)

// FeedbackRepository defines the persistence interface for feedback entries
type FeedbackRepository interface {
	// FindByID finds a feedback entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)

	// FindAll finds all feedback entries, newest first
	FindAll(ctx context.Context) ([]Feedback, error)

	// Save creates or updates a feedback entry
	Save(ctx context.Context, entry *Feedback) error
}
