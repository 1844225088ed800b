package commands

import (
	"context"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/ports"
)

// UpdateRatingDraftCommandHandler overwrites the session draft. Repeated
// taps never append feedback rows; only a submit does.
type UpdateRatingDraftCommandHandler struct {
	drafts ports.DraftStore
}

func NewUpdateRatingDraftCommandHandler(drafts ports.DraftStore) UpdateRatingDraftCommandHandler {
	return UpdateRatingDraftCommandHandler{drafts: drafts}
}

// Handle returns the draft as stored.
func (h *UpdateRatingDraftCommandHandler) Handle(ctx context.Context, cmd UpdateRatingDraftCommand) (feedback.Draft, error) {
	if err := cmd.Validate(); err != nil {
		return feedback.Draft{}, err
	}

	draft, found, err := h.drafts.Load(ctx, cmd.UserID(), cmd.Day())
	if err != nil {
		return feedback.Draft{}, err
	}
	if !found {
		draft = feedback.NewDraft(cmd.UserID(), cmd.Day())
	}

	draft, err = draft.Apply(cmd.Difficulty(), cmd.Clarity())
	if err != nil {
		return feedback.Draft{}, err
	}

	if err = h.drafts.Save(ctx, draft); err != nil {
		return feedback.Draft{}, err
	}

	return draft, nil
}
