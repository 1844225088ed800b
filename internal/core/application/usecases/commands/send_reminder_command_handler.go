package commands

import (
	"context"
	"log/slog"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
)

// SendReminderCommandHandler sends one daily reminder. Participants who
// finished the course get none, and the training reminder is skipped once
// today's training is done.
type SendReminderCommandHandler struct {
	uowFactory UserUoWFactory
	notifier   ports.Notifier
	catalog    *content.Catalog
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSendReminderCommandHandler(
	uowFactory UserUoWFactory,
	notifier ports.Notifier,
	catalog *content.Catalog,
	clock kernel.Clock,
	logger *slog.Logger,
) SendReminderCommandHandler {
	return SendReminderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		catalog:    catalog,
		clock:      clock,
		logger:     logger.With("component", "SendReminderCommandHandler"),
	}
}

// Handle reports whether a reminder was sent.
func (h *SendReminderCommandHandler) Handle(ctx context.Context, cmd SendReminderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	text, ok := h.catalog.Reminder(reminderKind(cmd.Kind()))
	if !ok {
		h.logger.WarnContext(ctx, "reminder has no text", "kind", cmd.Kind().String())
		return false, nil
	}

	send, err := h.record(ctx, cmd)
	if err != nil || !send {
		return false, err
	}

	notify(ctx, h.notifier, h.logger, ports.Message{UserID: cmd.UserID(), Text: text})
	return true, nil
}

func (h *SendReminderCommandHandler) record(ctx context.Context, cmd SendReminderCommand) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	participant, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return false, err
	}

	if participant.IsCourseComplete() {
		return false, nil
	}
	if cmd.Kind() == job.TrainingReminder && participant.TrainingCompleted() {
		return false, nil
	}

	if err = recordEvent(ctx, uow.AnalyticsRepository(), participant.ID(), analytics.ReminderSent,
		map[string]any{"kind": cmd.Kind().String(), "day": participant.CurrentDay().Int()}, h.clock.Now()); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func reminderKind(t job.Type) string {
	switch t {
	case job.MorningMotivation:
		return content.ReminderMorning
	case job.TrainingReminder:
		return content.ReminderTraining
	default:
		return content.ReminderEvening
	}
}
