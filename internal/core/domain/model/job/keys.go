package job

import (
	"fmt"

	"fitcourse/internal/core/domain/model/kernel"
)

// Keys of the system-wide jobs. A key is the replace-existing identity of a
// job: arming under a used key supersedes the previous instance.
const (
	SweepMidnightKey    = "day_progression_midnight"
	SweepMorningKey     = "day_progression_morning"
	BackupKey           = "database_backup"
	AnalyticsCleanupKey = "analytics_cleanup"
)

// OpenDayKey is the key of the job that opens day for one participant,
// e.g. "open_day_2_42".
func OpenDayKey(day kernel.CourseDay, userID kernel.UserID) string {
	return fmt.Sprintf("open_day_%d_%d", day.Int(), userID.Int64())
}

// ReminderKey is the key of a participant's daily reminder, e.g. "morning_42".
func ReminderKey(t Type, userID kernel.UserID) string {
	var prefix string
	switch t {
	case MorningMotivation:
		prefix = "morning"
	case EveningMotivation:
		prefix = "evening"
	case TrainingReminder:
		prefix = "training"
	default:
		prefix = t.String()
	}
	return fmt.Sprintf("%s_%d", prefix, userID.Int64())
}
