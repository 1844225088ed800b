package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/pkg/errs"
)

// OpenDayHandler opens the day carried by an open_day job. A participant
// removed since arming is not an error.
func OpenDayHandler(h commands.OpenCourseDayCommandHandler, logger *slog.Logger) Handler {
	logger = logger.With("component", "open_day_job")
	return func(ctx context.Context, j *job.ScheduledJob) error {
		userID := j.UserID()
		if userID == nil {
			return job.ErrUserIsRequired
		}

		cmd, err := commands.NewOpenCourseDayCommand(*userID, j.Day())
		if err != nil {
			return err
		}

		opened, err := h.Handle(ctx, cmd)
		if errors.Is(err, errs.ErrObjectNotFound) {
			logger.WarnContext(ctx, "participant is gone, nothing to open", "user_id", userID.Int64())
			return nil
		}
		if err != nil {
			return err
		}
		if !opened {
			logger.InfoContext(ctx, "day already reached", "user_id", userID.Int64(), "day", j.Day().Int())
		}
		return nil
	}
}

func SweepHandler(h commands.SweepProgressionCommandHandler) Handler {
	return func(ctx context.Context, _ *job.ScheduledJob) error {
		_, err := h.Handle(ctx, commands.NewSweepProgressionCommand())
		return err
	}
}

// ReminderHandler serves the three reminder types.
func ReminderHandler(h commands.SendReminderCommandHandler) Handler {
	return func(ctx context.Context, j *job.ScheduledJob) error {
		userID := j.UserID()
		if userID == nil {
			return job.ErrUserIsRequired
		}

		cmd, err := commands.NewSendReminderCommand(*userID, j.Type())
		if err != nil {
			return err
		}

		_, err = h.Handle(ctx, cmd)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
}

func BackupHandler(h commands.BackupDataCommandHandler) Handler {
	return func(ctx context.Context, _ *job.ScheduledJob) error {
		_, err := h.Handle(ctx, commands.NewBackupDataCommand())
		return err
	}
}

func CleanupHandler(h commands.CleanupAnalyticsCommandHandler) Handler {
	return func(ctx context.Context, _ *job.ScheduledJob) error {
		_, err := h.Handle(ctx, commands.NewCleanupAnalyticsCommand())
		return err
	}
}
