// Package job models scheduled jobs: their types, their replace-existing
// keys and the one-shot or recurring timing they follow.
//
// Job keys follow the naming used across the service:
//
//	open_day_<day>_<user>           one-shot, opens a course day
//	morning_<user>, training_<user>, evening_<user>
//	                                recurring daily reminders in the user's zone
//	day_progression_midnight, day_progression_morning,
//	database_backup, analytics_cleanup
//	                                recurring system jobs in server time
package job
