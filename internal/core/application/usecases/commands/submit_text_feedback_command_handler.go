package commands

import (
	"context"
	"log/slog"
	"time"

	"fitcourse/internal/core/domain/model/feedback"
)

// SubmitTextFeedbackCommandHandler records free text with the sentinel
// ratings. Text feedback is always negative: on the current day it opens the
// next day immediately and disarms any pending open_day job for it.
type SubmitTextFeedbackCommandHandler struct {
	processor feedbackProcessor
}

func NewSubmitTextFeedbackCommandHandler(deps FeedbackDeps, logger *slog.Logger) SubmitTextFeedbackCommandHandler {
	return SubmitTextFeedbackCommandHandler{
		processor: feedbackProcessor{
			deps:   deps,
			logger: logger.With("component", "SubmitTextFeedbackCommandHandler"),
		},
	}
}

func (h *SubmitTextFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitTextFeedbackCommand) (FeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return FeedbackResult{}, err
	}

	return h.processor.process(ctx, cmd.UserID(), cmd.Day(), func(now time.Time) (*feedback.Record, error) {
		return feedback.NewTextRecord(cmd.UserID(), cmd.Day(), cmd.Text(), now)
	}, true)
}
