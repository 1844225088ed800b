package user

import (
	"errors"
	"fmt"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when using a User that bypassed NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrCourseIsComplete is returned when advancing a participant who is already on the last day.
	ErrCourseIsComplete = errors.New("course is already complete")
)

// User is the participant aggregate. It owns the course position and the
// completion flag of the current day.
//
// Business rules:
//   - currentDay stays within [kernel.FirstCourseDay, kernel.MaxCourseDay]
//   - trainingCompleted refers to currentDay and is reset whenever the day changes
//   - day changes are forward-only, except for an explicit Reset on re-registration
//   - every mutation bumps version; an update based on a stale read is rejected
//
// Example usage:
//
//	u, err := NewUser(kernel.UserID(42), "Europe/Moscow", false, now)
//	if err != nil {
//	    return err
//	}
//	u.ToggleTraining(now)           // day 1 completed
//	changed, _ := u.OpenDay(2)    // moves to day 2, completion cleared
type User struct {
	id kernel.UserID
	// timezone is the raw identifier; it is resolved on every scheduling decision
	timezone          string
	currentDay        kernel.CourseDay
	trainingCompleted bool
	isPremium         bool
	lastActivity      time.Time
	createdAt         time.Time
	version           int64
	// storedVersion is the version last read from or written to persistence
	storedVersion int64

	isConstructed bool
}

// NewUser registers a participant on the first course day.
func NewUser(id kernel.UserID, timezone string, isPremium bool, now time.Time) (*User, error) {
	u := &User{
		currentDay:    kernel.FirstCourseDay,
		isPremium:     isPremium,
		lastActivity:  now,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setTimezone(timezone),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a participant from persistence.
func RestoreUser(
	id kernel.UserID,
	timezone string,
	currentDay int,
	trainingCompleted bool,
	isPremium bool,
	lastActivity time.Time,
	createdAt time.Time,
	version int64,
) (*User, error) {
	day, dayErr := kernel.NewCourseDay(currentDay)
	u := &User{
		currentDay:        day,
		trainingCompleted: trainingCompleted,
		isPremium:         isPremium,
		lastActivity:      lastActivity,
		createdAt:         createdAt,
		version:           version,
		storedVersion:     version,
		isConstructed:     true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setTimezone(timezone),
		dayErr,
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UserID {
	return u.id
}

func (u *User) Timezone() string {
	return u.timezone
}

// Zone resolves the stored identifier; see kernel.ResolveZone for the
// fallback contract.
func (u *User) Zone() (kernel.Zone, error) {
	return kernel.ResolveZone(u.timezone)
}

func (u *User) CurrentDay() kernel.CourseDay {
	return u.currentDay
}

func (u *User) TrainingCompleted() bool {
	return u.trainingCompleted
}

func (u *User) IsPremium() bool {
	return u.isPremium
}

func (u *User) LastActivity() time.Time {
	return u.lastActivity
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) Version() int64 {
	return u.version
}

// StoredVersion is the version the repository expects to overwrite.
func (u *User) StoredVersion() int64 {
	return u.storedVersion
}

// MarkStored records that the current version was written.
func (u *User) MarkStored() {
	u.storedVersion = u.version
}

// IsCourseComplete reports the terminal state: last day with training done.
func (u *User) IsCourseComplete() bool {
	return u.currentDay.IsLast() && u.trainingCompleted
}

// CanAccess reports whether content of day may be shown: past and current
// days are open, premium participants see everything.
func (u *User) CanAccess(day kernel.CourseDay) bool {
	return u.isPremium || day <= u.currentDay
}

// IdleFor returns the time elapsed since the last user-initiated action.
func (u *User) IdleFor(now time.Time) time.Duration {
	return now.Sub(u.lastActivity)
}

// Touch records a user-initiated action.
func (u *User) Touch(now time.Time) {
	u.lastActivity = now
	u.version++
}

// ToggleTraining flips the completion flag of the current day and returns
// the new value. It never touches scheduled jobs.
func (u *User) ToggleTraining(now time.Time) bool {
	u.trainingCompleted = !u.trainingCompleted
	u.Touch(now)
	return u.trainingCompleted
}

// AdvanceDay moves to the next day and clears the completion flag.
func (u *User) AdvanceDay() error {
	next, err := u.currentDay.Next()
	if err != nil {
		return ErrCourseIsComplete
	}
	u.moveTo(next)
	return nil
}

// OpenDay moves forward to target. Targets at or behind the current day are
// ignored and reported as unchanged, which makes late or duplicate opens harmless.
func (u *User) OpenDay(target kernel.CourseDay) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target <= u.currentDay {
		return false, nil
	}
	u.moveTo(target)
	return true, nil
}

// Reset puts a re-registering participant back on the first day.
func (u *User) Reset(timezone string, isPremium bool, now time.Time) error {
	if err := u.setTimezone(timezone); err != nil {
		return err
	}
	u.currentDay = kernel.FirstCourseDay
	u.trainingCompleted = false
	u.isPremium = isPremium
	u.Touch(now)
	return nil
}

func (u *User) moveTo(day kernel.CourseDay) {
	u.currentDay = day
	u.trainingCompleted = false
	u.version++
}

func (u *User) setID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setTimezone(timezone string) error {
	if len(timezone) > 64 {
		return errs.NewValueIsInvalidErrorWithCause("timezone", fmt.Errorf("%d characters is too long", len(timezone)))
	}
	u.timezone = timezone
	return nil
}
