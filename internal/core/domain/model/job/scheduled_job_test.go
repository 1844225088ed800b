package job_test

import (
	"testing"
	"time"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func TestNewOpenDayJob(t *testing.T) {
	t.Run("should build a keyed one-shot job", func(t *testing.T) {
		fireAt := now.Add(20 * time.Hour)

		j, err := job.NewOpenDayJob(kernel.UserID(42), 2, fireAt, now)

		require.NoError(t, err)
		assert.Equal(t, "open_day_2_42", j.Key())
		assert.Equal(t, job.OpenDay, j.Type())
		assert.Equal(t, kernel.CourseDay(2), j.Day())
		assert.Equal(t, fireAt, j.FireAt())
		assert.False(t, j.IsRecurring())
		assert.True(t, j.IsActive())
		require.NoError(t, j.ID().Validate())
	})

	t.Run("should reject day beyond the course", func(t *testing.T) {
		_, err := job.NewOpenDayJob(kernel.UserID(42), 4, now, now)
		require.Error(t, err)
	})

	t.Run("should give each instance its own id", func(t *testing.T) {
		a, err := job.NewOpenDayJob(kernel.UserID(42), 2, now, now)
		require.NoError(t, err)
		b, err := job.NewOpenDayJob(kernel.UserID(42), 2, now, now)
		require.NoError(t, err)

		assert.Equal(t, a.Key(), b.Key())
		assert.False(t, a.ID().IsEqual(b.ID()))
	})
}

func TestNewReminderJob(t *testing.T) {
	zone := kernel.MustZone("Asia/Tokyo")

	j, err := job.NewReminderJob(job.MorningMotivation, kernel.UserID(5), zone, 8, 0, now)

	require.NoError(t, err)
	assert.Equal(t, "morning_5", j.Key())
	assert.Equal(t, "CRON_TZ=Asia/Tokyo 0 8 * * *", j.CronSpec())
	assert.True(t, j.IsRecurring())
	assert.True(t, j.FireAt().IsZero())

	_, err = job.NewReminderJob(job.OpenDay, kernel.UserID(5), zone, 8, 0, now)
	require.Error(t, err)
}

func TestNewRecurring(t *testing.T) {
	t.Run("should allow system jobs without user", func(t *testing.T) {
		j, err := job.NewRecurring(job.SweepMorningKey, job.DayProgressionSweep, nil, "0 8 * * *", now)
		require.NoError(t, err)
		assert.Nil(t, j.UserID())
	})

	t.Run("should require user for participant jobs", func(t *testing.T) {
		_, err := job.NewRecurring("evening_1", job.EveningMotivation, nil, "0 20 * * *", now)
		require.ErrorIs(t, err, job.ErrUserIsRequired)
	})

	t.Run("should require spec", func(t *testing.T) {
		_, err := job.NewRecurring(job.BackupKey, job.Backup, nil, " ", now)
		require.ErrorIs(t, err, job.ErrCronSpecIsRequired)
	})
}

func TestScheduledJob_IsPastDue(t *testing.T) {
	past, err := job.NewOpenDayJob(kernel.UserID(1), 2, now.Add(-time.Minute), now)
	require.NoError(t, err)
	future, err := job.NewOpenDayJob(kernel.UserID(1), 2, now.Add(time.Minute), now)
	require.NoError(t, err)
	recurring, err := job.NewRecurring(job.BackupKey, job.Backup, nil, "0 3 * * *", now)
	require.NoError(t, err)

	assert.True(t, past.IsPastDue(now))
	assert.False(t, future.IsPastDue(now))
	assert.False(t, recurring.IsPastDue(now))
}

func TestParseType(t *testing.T) {
	for _, tt := range []job.Type{
		job.MorningMotivation, job.EveningMotivation, job.TrainingReminder,
		job.DayProgressionSweep, job.Backup, job.AnalyticsCleanup, job.OpenDay,
	} {
		parsed, err := job.ParseType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}

	_, err := job.ParseType("unknown")
	require.Error(t, err)
}

func TestRestoreScheduledJob(t *testing.T) {
	uid := kernel.UserID(3)

	t.Run("should require fire time for one-shot rows", func(t *testing.T) {
		_, err := job.RestoreScheduledJob(kernel.NewUUID(), "open_day_2_3", job.OpenDay, &uid, time.Time{}, "", 2, true, now)
		require.ErrorIs(t, err, job.ErrFireAtIsRequired)
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := job.RestoreScheduledJob(kernel.UUID{}, "open_day_2_3", job.OpenDay, &uid, now, "", 2, true, now)
		require.Error(t, err)
	})
}
