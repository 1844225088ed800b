package services

import (
	"time"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
)

const (
	// OpenDayHour is the local hour at which a day unlocked by positive feedback opens.
	OpenDayHour = 6

	sweepIdleThreshold        = 24 * time.Hour
	sweepMorningIdleThreshold = 8 * time.Hour
	sweepMorningFromHour      = 8
	sweepMorningToHour        = 12
)

// Action is what the progression policy asks the application to do.
type Action int

const (
	NoAction Action = iota
	// ScheduleOpen arms an open_day job for TargetDay at the next local OpenDayHour.
	ScheduleOpen
	// AdvanceNow moves the participant to TargetDay immediately.
	AdvanceNow
)

func (a Action) String() string {
	switch a {
	case ScheduleOpen:
		return "schedule_open"
	case AdvanceNow:
		return "advance_now"
	default:
		return "none"
	}
}

// Decision is the outcome of a feedback evaluation.
type Decision struct {
	Action    Action
	TargetDay kernel.CourseDay
}

// SweepReason explains why the sweep advanced a participant.
type SweepReason string

const (
	SweepReasonNone      SweepReason = ""
	SweepReasonCompleted SweepReason = "completed"
	SweepReasonMorning   SweepReason = "morning"
)

// ProgressionPolicy decides when a participant moves from day N to N+1.
//
// Three triggers compete:
//   - positive feedback on the current day schedules the next day for the
//     next local 06:00; the day itself changes only when that job fires
//   - negative feedback on the current day advances immediately
//   - the periodic sweep advances participants who completed their training
//     and stayed idle for 24h, or for 8h when the sweep runs between 08:00
//     and 12:59 server time
//
// The last day is terminal: no trigger moves a participant past it.
type ProgressionPolicy struct {
	server kernel.Zone
}

// NewProgressionPolicy evaluates sweep hours in the server zone.
func NewProgressionPolicy(server kernel.Zone) ProgressionPolicy {
	return ProgressionPolicy{server: server}
}

// OnFeedback maps a classified submission for day to a Decision. Feedback
// about any day other than the current one never moves the participant.
func (p ProgressionPolicy) OnFeedback(u *user.User, day kernel.CourseDay, sentiment feedback.Sentiment) (Decision, error) {
	if err := u.Validate(); err != nil {
		return Decision{}, err
	}
	if day != u.CurrentDay() || day.IsLast() {
		return Decision{Action: NoAction}, nil
	}

	next, err := day.Next()
	if err != nil {
		return Decision{Action: NoAction}, nil
	}

	switch sentiment {
	case feedback.Positive:
		return Decision{Action: ScheduleOpen, TargetDay: next}, nil
	case feedback.Negative:
		return Decision{Action: AdvanceNow, TargetDay: next}, nil
	default:
		return Decision{Action: NoAction}, nil
	}
}

// OpenDayAt returns the instant of the next local OpenDayHour, one calendar
// day after the participant's current local date.
func (p ProgressionPolicy) OpenDayAt(zone kernel.Zone, now time.Time) time.Time {
	return zone.NextOccurrence(now, OpenDayHour, 0, 1)
}

// OnSweep reports whether the sweep running at now should advance u.
func (p ProgressionPolicy) OnSweep(u *user.User, now time.Time) (bool, SweepReason) {
	if u.Validate() != nil || u.CurrentDay().IsLast() || !u.TrainingCompleted() {
		return false, SweepReasonNone
	}

	idle := u.IdleFor(now)
	if idle >= sweepIdleThreshold {
		return true, SweepReasonCompleted
	}

	hour := p.server.In(now).Hour()
	if hour >= sweepMorningFromHour && hour <= sweepMorningToHour && idle >= sweepMorningIdleThreshold {
		return true, SweepReasonMorning
	}

	return false, SweepReasonNone
}
