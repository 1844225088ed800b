package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
)

// JobScheduler arms and cancels timers backed by the JobRepository.
type JobScheduler interface {
	// Arm persists j as the active instance of its key and replaces any timer
	// armed under the same key. A store failure leaves timers untouched and is
	// returned as errs.PersistenceError.
	Arm(ctx context.Context, j *job.ScheduledJob) error

	// Disarm cancels the timer of key and deactivates its row. Unknown keys
	// are a successful no-op.
	Disarm(ctx context.Context, key string) error

	// CancelUserJobs disarms and deactivates every job of a participant.
	CancelUserJobs(ctx context.Context, userID kernel.UserID) error

	// CancelAll disarms every timer and deactivates every active row.
	CancelAll(ctx context.Context) error
}
