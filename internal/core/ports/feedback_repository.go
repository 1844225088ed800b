package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
)

// FeedbackRepository appends feedback records.
type FeedbackRepository interface {
	Add(ctx context.Context, record *feedback.Record) error
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*feedback.Record, error)
}
