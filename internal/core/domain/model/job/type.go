package job

import (
	"fmt"

	"fitcourse/internal/pkg/errs"
)

// Type classifies scheduled jobs and selects the handler that runs them.
type Type int

const (
	// Unknown catches uninitialized values.
	Unknown Type = iota
	MorningMotivation
	EveningMotivation
	TrainingReminder
	DayProgressionSweep
	Backup
	AnalyticsCleanup
	// OpenDay moves one participant to the day carried in the job payload.
	OpenDay
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		Unknown:             "unknown",
		MorningMotivation:   "morning_motivation",
		EveningMotivation:   "evening_motivation",
		TrainingReminder:    "training_reminder",
		DayProgressionSweep: "day_progression_sweep",
		Backup:              "backup",
		AnalyticsCleanup:    "analytics_cleanup",
		OpenDay:             "open_day",
	}
}

// ParseType converts the persisted name back to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if name == s && t != Unknown {
			return t, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("job type", fmt.Errorf("%q is not a known job type", s))
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("job type", fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// IsSystem reports job types that are not bound to a participant.
func (t Type) IsSystem() bool {
	return t == DayProgressionSweep || t == Backup || t == AnalyticsCleanup
}

// IsReminder reports the per-participant daily message types.
func (t Type) IsReminder() bool {
	return t == MorningMotivation || t == EveningMotivation || t == TrainingReminder
}
