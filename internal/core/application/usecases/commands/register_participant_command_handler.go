package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"
)

// Local times of the daily reminders armed at registration.
const (
	MorningReminderHour  = 8
	TrainingReminderHour = 18
	EveningReminderHour  = 20
)

// RegisterParticipantCommandHandler creates the participant on day 1, or
// resets an existing one, and re-arms the daily reminders.
//
// Re-registration cancels every job of the participant before arming new
// ones, so a participant never has two parallel timers of the same kind.
type RegisterParticipantCommandHandler struct {
	uowFactory  UserUoWFactory
	scheduler   ports.JobScheduler
	clock       kernel.Clock
	defaultZone string
	logger      *slog.Logger
}

func NewRegisterParticipantCommandHandler(
	uowFactory UserUoWFactory,
	scheduler ports.JobScheduler,
	clock kernel.Clock,
	defaultZone string,
	logger *slog.Logger,
) RegisterParticipantCommandHandler {
	return RegisterParticipantCommandHandler{
		uowFactory:  uowFactory,
		scheduler:   scheduler,
		clock:       clock,
		defaultZone: defaultZone,
		logger:      logger.With("component", "RegisterParticipantCommandHandler"),
	}
}

// Handle returns the stored participant.
func (h *RegisterParticipantCommandHandler) Handle(ctx context.Context, cmd RegisterParticipantCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	participant, err := h.upsert(ctx, cmd, now)
	if err != nil {
		return nil, err
	}

	if err = h.scheduler.CancelUserJobs(ctx, participant.ID()); err != nil {
		return nil, err
	}

	zone := participantZone(ctx, participant, h.defaultZone, h.logger)
	reminders := []struct {
		jobType job.Type
		hour    int
	}{
		{job.MorningMotivation, MorningReminderHour},
		{job.TrainingReminder, TrainingReminderHour},
		{job.EveningMotivation, EveningReminderHour},
	}
	for _, r := range reminders {
		reminder, jobErr := job.NewReminderJob(r.jobType, participant.ID(), zone, r.hour, 0, now)
		if jobErr != nil {
			return nil, jobErr
		}
		if err = h.scheduler.Arm(ctx, reminder); err != nil {
			return nil, err
		}
	}

	h.logger.InfoContext(ctx, "participant registered",
		"user_id", participant.ID().Int64(), "zone", zone.ID(), "premium", participant.IsPremium())
	return participant, nil
}

func (h *RegisterParticipantCommandHandler) upsert(ctx context.Context, cmd RegisterParticipantCommand, now time.Time) (*user.User, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	participant, err := repo.Get(ctx, cmd.UserID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		participant, err = user.NewUser(cmd.UserID(), cmd.Timezone(), cmd.IsPremium(), now)
		if err != nil {
			return nil, err
		}
		err = repo.Add(ctx, participant)
	case err == nil:
		if err = participant.Reset(cmd.Timezone(), cmd.IsPremium(), now); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, participant)
	}
	if err != nil {
		return nil, err
	}

	if err = recordEvent(ctx, uow.AnalyticsRepository(), participant.ID(), analytics.Registered,
		map[string]any{"timezone": cmd.Timezone(), "premium": cmd.IsPremium()}, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return participant, nil
}
