package feedback

import (
	"strings"
	"time"

	"github.com/webshop/backend/internal/domain/shared"
)

// Feedback represents a message submitted by a visitor
type Feedback struct {
	shared.BaseEntity
	Email      string `gorm:"type:varchar(200);not null"`
	Message    string `gorm:"type:text;not null"`
	IsArchived bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Feedback) TableName() string {
	return "feedbacks"
}

// NewFeedback creates a new feedback entry
func NewFeedback(email, message string) (*Feedback, error) {
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if email == "" || message == "" {
		return nil, shared.NewDomainError("INVALID_FEEDBACK", "Email and message are required")
	}

	return &Feedback{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		Message:    message,
		IsArchived: false,
	}, nil
}

// Archive marks the feedback as handled
func (f *Feedback) Archive() {
	f.IsArchived = true
	f.UpdatedAt = time.Now()
}
