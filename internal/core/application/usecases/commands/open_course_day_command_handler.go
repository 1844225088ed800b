package commands

import (
	"context"
	"log/slog"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
)

// OpenCourseDayCommandHandler moves a participant to the day of a fired
// open_day job and sends exactly one notification. Transitions are
// forward-only: a participant already on or past the day is left alone and
// not notified, so late or duplicate fires are harmless.
type OpenCourseDayCommandHandler struct {
	uowFactory UserUoWFactory
	notifier   ports.Notifier
	catalog    *content.Catalog
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewOpenCourseDayCommandHandler(
	uowFactory UserUoWFactory,
	notifier ports.Notifier,
	catalog *content.Catalog,
	clock kernel.Clock,
	logger *slog.Logger,
) OpenCourseDayCommandHandler {
	return OpenCourseDayCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		catalog:    catalog,
		clock:      clock,
		logger:     logger.With("component", "OpenCourseDayCommandHandler"),
	}
}

// Handle reports whether the participant moved.
func (h *OpenCourseDayCommandHandler) Handle(ctx context.Context, cmd OpenCourseDayCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	changed, err := h.open(ctx, cmd)
	if err != nil || !changed {
		return changed, err
	}

	notify(ctx, h.notifier, h.logger, ports.Message{
		UserID:  cmd.UserID(),
		Text:    h.catalog.Message(content.MessageDayOpened, cmd.Day().Int()),
		Buttons: []ports.Button{openTrainingButton(cmd.Day())},
	})

	h.logger.InfoContext(ctx, "course day opened", "user_id", cmd.UserID().Int64(), "day", cmd.Day().Int())
	return true, nil
}

func (h *OpenCourseDayCommandHandler) open(ctx context.Context, cmd OpenCourseDayCommand) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	participant, err := repo.Get(ctx, cmd.UserID())
	if err != nil {
		return false, err
	}

	changed, err := participant.OpenDay(cmd.Day())
	if err != nil || !changed {
		return false, err
	}

	if err = repo.Update(ctx, participant); err != nil {
		return false, err
	}

	if err = recordEvent(ctx, uow.AnalyticsRepository(), participant.ID(), analytics.DayOpened,
		map[string]any{"day": cmd.Day().Int(), "origin": "scheduler"}, h.clock.Now()); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
