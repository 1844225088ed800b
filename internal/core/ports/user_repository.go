// Package ports defines the contracts between the course core and its
// adapters: persistence, scheduling, notification and session state.
package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
)

// UserRepository persists participant aggregates. Updates are
// last-write-wins per row.
type UserRepository interface {
	// Add persists a new participant.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing participant.
	// Returns errs.ErrObjectNotFound when the participant does not exist.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns the participant or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UserID) (*user.User, error)

	// ListProgressionCandidates returns participants below the last course day
	// whose current training is marked completed, ordered by id.
	ListProgressionCandidates(ctx context.Context) ([]*user.User, error)
}
