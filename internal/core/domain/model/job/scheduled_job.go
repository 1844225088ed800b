package job

import (
	"errors"
	"strings"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
)

var (
	ErrScheduledJobIsNotConstructed = errors.New("ScheduledJob must be created via NewOneShot or NewRecurring")
	ErrKeyIsRequired                = errs.NewValueIsRequiredError("job key")
	ErrFireAtIsRequired             = errs.NewValueIsRequiredError("fire at")
	ErrCronSpecIsRequired           = errs.NewValueIsRequiredError("cron spec")
	ErrUserIsRequired               = errs.NewValueIsRequiredError("job user")
)

// ScheduledJob is one armed instance of a keyed job. Re-arming a key creates
// a new instance; the store keeps superseded instances inactive for audit.
//
// One-shot jobs fire once at FireAt. Recurring jobs carry a standard cron
// spec (optionally prefixed with CRON_TZ=) and FireAt holds the next planned
// occurrence, refreshed by the scheduler after every run.
type ScheduledJob struct {
	id       kernel.UUID
	key      string
	jobType  Type
	userID   *kernel.UserID
	fireAt   time.Time
	cronSpec string
	// day is the payload of OpenDay jobs
	day       kernel.CourseDay
	isActive  bool
	createdAt time.Time

	isConstructed bool
}

// NewOneShot creates an active job firing once at fireAt.
func NewOneShot(key string, jobType Type, userID *kernel.UserID, fireAt time.Time, now time.Time) (*ScheduledJob, error) {
	j := newJob(jobType, userID, now)
	if err := errors.Join(
		j.setKey(key),
		j.setFireAt(fireAt),
		j.validateOwner(),
	); err != nil {
		return nil, err
	}
	return j, nil
}

// NewRecurring creates an active job following cronSpec. FireAt stays zero
// until the scheduler computes the first occurrence.
func NewRecurring(key string, jobType Type, userID *kernel.UserID, cronSpec string, now time.Time) (*ScheduledJob, error) {
	j := newJob(jobType, userID, now)
	if err := errors.Join(
		j.setKey(key),
		j.setCronSpec(cronSpec),
		j.validateOwner(),
	); err != nil {
		return nil, err
	}
	return j, nil
}

// NewOpenDayJob creates the one-shot job that moves userID to day at fireAt.
func NewOpenDayJob(userID kernel.UserID, day kernel.CourseDay, fireAt time.Time, now time.Time) (*ScheduledJob, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}
	j, err := NewOneShot(OpenDayKey(day, userID), OpenDay, &userID, fireAt, now)
	if err != nil {
		return nil, err
	}
	j.day = day
	return j, nil
}

// NewReminderJob creates a participant's daily reminder at hour:minute in zone.
func NewReminderJob(jobType Type, userID kernel.UserID, zone kernel.Zone, hour, minute int, now time.Time) (*ScheduledJob, error) {
	if !jobType.IsReminder() {
		return nil, errs.NewValueIsInvalidError("reminder job type")
	}
	return NewRecurring(ReminderKey(jobType, userID), jobType, &userID, zone.CronSpec(hour, minute), now)
}

// RestoreScheduledJob rebuilds a job row.
func RestoreScheduledJob(
	id kernel.UUID,
	key string,
	jobType Type,
	userID *kernel.UserID,
	fireAt time.Time,
	cronSpec string,
	day int,
	isActive bool,
	createdAt time.Time,
) (*ScheduledJob, error) {
	j := &ScheduledJob{
		jobType:       jobType,
		userID:        userID,
		fireAt:        fireAt,
		cronSpec:      cronSpec,
		day:           kernel.CourseDay(day),
		isActive:      isActive,
		createdAt:     createdAt,
		isConstructed: true,
	}
	if err := errors.Join(
		id.Validate(),
		j.setKey(key),
		j.validateOwner(),
	); err != nil {
		return nil, err
	}
	j.id = id
	if cronSpec == "" && fireAt.IsZero() {
		return nil, ErrFireAtIsRequired
	}
	return j, nil
}

func newJob(jobType Type, userID *kernel.UserID, now time.Time) *ScheduledJob {
	return &ScheduledJob{
		id:            kernel.NewUUID(),
		jobType:       jobType,
		userID:        userID,
		isActive:      true,
		createdAt:     now,
		isConstructed: true,
	}
}

func (j *ScheduledJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrScheduledJobIsNotConstructed
	}
	return nil
}

// ID identifies this instance.
func (j *ScheduledJob) ID() kernel.UUID {
	return j.id
}

// Key is the replace-existing identity shared by all instances of the job.
func (j *ScheduledJob) Key() string {
	return j.key
}

func (j *ScheduledJob) Type() Type {
	return j.jobType
}

// UserID is nil for system jobs.
func (j *ScheduledJob) UserID() *kernel.UserID {
	return j.userID
}

func (j *ScheduledJob) FireAt() time.Time {
	return j.fireAt
}

func (j *ScheduledJob) CronSpec() string {
	return j.cronSpec
}

func (j *ScheduledJob) IsRecurring() bool {
	return j.cronSpec != ""
}

// Day is the target day of an OpenDay job.
func (j *ScheduledJob) Day() kernel.CourseDay {
	return j.day
}

func (j *ScheduledJob) IsActive() bool {
	return j.isActive
}

func (j *ScheduledJob) CreatedAt() time.Time {
	return j.createdAt
}

// IsPastDue reports a one-shot job whose instant has already passed.
func (j *ScheduledJob) IsPastDue(now time.Time) bool {
	return !j.IsRecurring() && !j.fireAt.After(now)
}

// Reschedule sets the next planned occurrence of a recurring job.
func (j *ScheduledJob) Reschedule(next time.Time) error {
	if next.IsZero() {
		return ErrFireAtIsRequired
	}
	j.fireAt = next
	return nil
}

// Deactivate marks the instance as superseded, cancelled or executed.
func (j *ScheduledJob) Deactivate() {
	j.isActive = false
}

func (j *ScheduledJob) setKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyIsRequired
	}
	j.key = key
	return nil
}

func (j *ScheduledJob) setFireAt(fireAt time.Time) error {
	if fireAt.IsZero() {
		return ErrFireAtIsRequired
	}
	j.fireAt = fireAt
	return nil
}

func (j *ScheduledJob) setCronSpec(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return ErrCronSpecIsRequired
	}
	j.cronSpec = spec
	return nil
}

func (j *ScheduledJob) validateOwner() error {
	if err := j.jobType.Validate(); err != nil {
		return err
	}
	if j.jobType.IsSystem() {
		return nil
	}
	if j.userID == nil {
		return ErrUserIsRequired
	}
	return j.userID.Validate()
}
