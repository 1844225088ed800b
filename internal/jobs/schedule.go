package jobs

import (
	"sync/atomic"
	"time"

	"fitcourse/internal/core/domain/model/job"

	"github.com/robfig/cron/v3"
)

// onceSchedule fires a single time at a fixed instant. A fire time that has
// already passed when the schedule is first consulted fires on the next tick.
type onceSchedule struct {
	at     time.Time
	primed atomic.Bool
}

func newOnceSchedule(at time.Time) *onceSchedule {
	return &onceSchedule{at: at}
}

// Next is called by cron once when the entry is added and once after every
// run.
func (s *onceSchedule) Next(t time.Time) time.Time {
	if s.primed.CompareAndSwap(false, true) {
		if s.at.After(t) {
			return s.at
		}
		return t
	}
	if s.at.After(t) {
		return s.at
	}
	return time.Time{}
}

// scheduleFor builds the cron schedule of j. Recurring jobs are rescheduled
// to their next occurrence after now.
func scheduleFor(j *job.ScheduledJob, now time.Time) (cron.Schedule, error) {
	if !j.IsRecurring() {
		return newOnceSchedule(j.FireAt()), nil
	}

	schedule, err := cron.ParseStandard(j.CronSpec())
	if err != nil {
		return nil, err
	}
	if err = j.Reschedule(schedule.Next(now)); err != nil {
		return nil, err
	}
	return schedule, nil
}
