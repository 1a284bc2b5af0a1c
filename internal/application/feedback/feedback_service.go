package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webshop/backend/internal/domain/feedback"
)

// SubmitFeedbackRequest represents a feedback submission
type SubmitFeedbackRequest struct {
	Email   string `json:"email" binding:"required,email,max=200"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// FeedbackResponse represents a feedback entry in API responses
type FeedbackResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeedbackService handles visitor feedback
type FeedbackService struct {
	feedbackRepo feedback.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo feedback.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// Submit stores a new feedback entry
func (s *FeedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest) (*FeedbackResponse, error) {
	entry, err := feedback.NewFeedback(req.Email, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return toResponse(entry), nil
}

// List returns all feedback entries, newest first
func (s *FeedbackService) List(ctx context.Context) ([]FeedbackResponse, error) {
	entries, err := s.feedbackRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]FeedbackResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toResponse(&entries[i]))
	}
	return result, nil
}

// Archive marks a feedback entry as handled
func (s *FeedbackService) Archive(ctx context.Context, id uuid.UUID) (*FeedbackResponse, error) {
	entry, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Archive()
	if err := s.feedbackRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return toResponse(entry), nil
}

func toResponse(f *feedback.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:         f.ID,
		Email:      f.Email,
		Message:    f.Message,
		IsArchived: f.IsArchived,
		CreatedAt:  f.CreatedAt,
	}
}
