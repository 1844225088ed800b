package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
)

// JobFilter narrows JobRepository.List.
type JobFilter struct {
	UserID     *kernel.UserID
	ActiveOnly bool
}

// JobRepository is the durable record of scheduled jobs. Rows are never
// deleted; superseded, cancelled and executed instances stay inactive.
// Every I/O failure is reported as errs.PersistenceError.
type JobRepository interface {
	// Put stores the instance as the single active job of its key,
	// deactivating any other active instance of the same key atomically.
	Put(ctx context.Context, j *job.ScheduledJob) error

	// Refresh writes the next fire time of an instance that is still active
	// and reports false when the row was deactivated in the meantime.
	Refresh(ctx context.Context, j *job.ScheduledJob) (bool, error)

	// List returns jobs ordered by scheduled time.
	List(ctx context.Context, filter JobFilter) ([]*job.ScheduledJob, error)

	// Deactivate deactivates the active instance of key. Missing or already
	// inactive keys are a successful no-op.
	Deactivate(ctx context.Context, key string) error

	// DeactivateInstance deactivates exactly one instance.
	DeactivateInstance(ctx context.Context, id kernel.UUID) error

	// DeactivateForUser deactivates every active job of a participant and
	// returns the affected keys.
	DeactivateForUser(ctx context.Context, userID kernel.UserID) ([]string, error)

	// DeactivateAll deactivates every active job and returns how many rows changed.
	DeactivateAll(ctx context.Context) (int64, error)
}
