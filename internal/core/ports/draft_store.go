package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
)

// DraftStore keeps in-flight ratings with a TTL. It is the only owner of
// per-participant session state.
type DraftStore interface {
	// Save overwrites the draft of (draft.UserID, draft.Day).
	Save(ctx context.Context, draft feedback.Draft) error
	// Load returns the draft and whether it exists.
	Load(ctx context.Context, userID kernel.UserID, day kernel.CourseDay) (feedback.Draft, bool, error)
	// Delete removes the draft; missing drafts are not an error.
	Delete(ctx context.Context, userID kernel.UserID, day kernel.CourseDay) error
	// Clear removes every draft.
	Clear(ctx context.Context) error
}
