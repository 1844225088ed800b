package commands

import (
	"context"
	"log/slog"
	"time"

	"fitcourse/internal/core/domain/model/feedback"
)

// SubmitStructuredFeedbackCommandHandler records button ratings.
//
// Positive ratings on the current day schedule the next day for the next
// local 06:00; the day itself does not change until that job fires. Negative
// ratings advance immediately, neutral ones only get acknowledged.
type SubmitStructuredFeedbackCommandHandler struct {
	processor feedbackProcessor
}

func NewSubmitStructuredFeedbackCommandHandler(deps FeedbackDeps, logger *slog.Logger) SubmitStructuredFeedbackCommandHandler {
	return SubmitStructuredFeedbackCommandHandler{
		processor: feedbackProcessor{
			deps:   deps,
			logger: logger.With("component", "SubmitStructuredFeedbackCommandHandler"),
		},
	}
}

func (h *SubmitStructuredFeedbackCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitStructuredFeedbackCommand,
) (FeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return FeedbackResult{}, err
	}

	return h.processor.process(ctx, cmd.UserID(), cmd.Day(), func(now time.Time) (*feedback.Record, error) {
		return feedback.NewStructuredRecord(cmd.UserID(), cmd.Day(), cmd.Difficulty(), cmd.Clarity(), cmd.Comments(), now)
	}, false)
}

// HandleDraft submits the session draft of (user, day).
func (h *SubmitStructuredFeedbackCommandHandler) HandleDraft(
	ctx context.Context,
	cmd SubmitDraftFeedbackCommand,
) (FeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return FeedbackResult{}, err
	}

	draft, found, err := h.processor.deps.Drafts.Load(ctx, cmd.UserID(), cmd.Day())
	if err != nil {
		return FeedbackResult{}, err
	}
	if !found {
		draft = feedback.NewDraft(cmd.UserID(), cmd.Day())
	}

	structured, err := NewSubmitStructuredFeedbackCommand(
		cmd.UserID(),
		cmd.Day(),
		draft.Difficulty.Int(),
		draft.Clarity.Int(),
		cmd.Comments(),
	)
	if err != nil {
		return FeedbackResult{}, err
	}

	return h.Handle(ctx, structured)
}
