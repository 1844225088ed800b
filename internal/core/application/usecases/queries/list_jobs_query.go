package queries

import (
	"errors"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrListJobsQueryIsNotConstructed = errors.New(
	"ListJobsQuery must be created via NewListJobsQuery constructor",
)

// ListJobsQuery lists job rows, optionally for one participant.
type ListJobsQuery struct {
	userID     *kernel.UserID
	activeOnly bool

	guard guard.ConstructorGuard
}

// NewListJobsQuery accepts a nil userID to list the jobs of everyone,
// system jobs included.
func NewListJobsQuery(userID *kernel.UserID, activeOnly bool) (ListJobsQuery, error) {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return ListJobsQuery{}, err
		}
	}
	return ListJobsQuery{userID: userID, activeOnly: activeOnly, guard: guard.NewConstructorGuard()}, nil
}

func (q ListJobsQuery) Validate() error {
	return q.guard.Validate(ErrListJobsQueryIsNotConstructed)
}

func (q ListJobsQuery) UserID() *kernel.UserID {
	return q.userID
}

func (q ListJobsQuery) ActiveOnly() bool {
	return q.activeOnly
}

// ListJobsQueryResponse is one job row. ScheduledTime is the next fire time.
type ListJobsQueryResponse struct {
	JobID         string    `json:"job_id"`
	UserID        *int64    `json:"user_id,omitempty"`
	JobType       string    `json:"job_type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	CronSpec      string    `json:"cron_spec,omitempty"`
	IsActive      bool      `json:"is_active"`
}
