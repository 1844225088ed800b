package commands

import (
	"context"
	"errors"
	"log/slog"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
)

// ErrDayIsLocked is returned for days after the current one unless the
// participant is premium.
var ErrDayIsLocked = errors.New("course day is locked")

// DispatchContentCommandHandler sends the training of a day. The
// training_viewed event is durable before the message is attempted, and a
// transport failure is logged, never returned.
type DispatchContentCommandHandler struct {
	uowFactory UserUoWFactory
	notifier   ports.Notifier
	catalog    *content.Catalog
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewDispatchContentCommandHandler(
	uowFactory UserUoWFactory,
	notifier ports.Notifier,
	catalog *content.Catalog,
	clock kernel.Clock,
	logger *slog.Logger,
) DispatchContentCommandHandler {
	return DispatchContentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		catalog:    catalog,
		clock:      clock,
		logger:     logger.With("component", "DispatchContentCommandHandler"),
	}
}

// Handle returns the message that was handed to the transport.
func (h *DispatchContentCommandHandler) Handle(ctx context.Context, cmd DispatchContentCommand) (ports.Message, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Message{}, err
	}

	msg, err := trainingMessage(h.catalog, cmd.UserID(), cmd.Day())
	if err != nil {
		return ports.Message{}, err
	}

	if err = h.record(ctx, cmd); err != nil {
		return ports.Message{}, err
	}

	notify(ctx, h.notifier, h.logger, msg)

	return msg, nil
}

func (h *DispatchContentCommandHandler) record(ctx context.Context, cmd DispatchContentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	participant, err := repo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if !participant.CanAccess(cmd.Day()) {
		return ErrDayIsLocked
	}

	now := h.clock.Now()
	if cmd.Origin() == OriginUserRequest {
		participant.Touch(now)
		if err = repo.Update(ctx, participant); err != nil {
			return err
		}
	}

	if err = recordEvent(ctx, uow.AnalyticsRepository(), participant.ID(), analytics.TrainingViewed,
		map[string]any{"day": cmd.Day().Int(), "origin": cmd.Origin().String()}, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
