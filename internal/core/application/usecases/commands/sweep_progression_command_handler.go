package commands

import (
	"context"
	"log/slog"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/services"
	"fitcourse/internal/core/ports"
)

// SweepResult lists the participants moved by one sweep.
type SweepResult struct {
	Advanced []SweepAdvance
}

// SweepAdvance is one participant moved by the sweep.
type SweepAdvance struct {
	UserID kernel.UserID
	Day    kernel.CourseDay
	Reason services.SweepReason
}

// SweepProgressionCommandHandler advances participants who completed their
// training and stayed idle long enough. All advances of one run commit in a
// single transaction; notifications follow the commit.
//
// A second run right after the first moves nobody: advancing clears the
// completion flag, which every sweep rule requires.
type SweepProgressionCommandHandler struct {
	uowFactory UserUoWFactory
	notifier   ports.Notifier
	catalog    *content.Catalog
	policy     services.ProgressionPolicy
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSweepProgressionCommandHandler(
	uowFactory UserUoWFactory,
	notifier ports.Notifier,
	catalog *content.Catalog,
	policy services.ProgressionPolicy,
	clock kernel.Clock,
	logger *slog.Logger,
) SweepProgressionCommandHandler {
	return SweepProgressionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		catalog:    catalog,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "SweepProgressionCommandHandler"),
	}
}

func (h *SweepProgressionCommandHandler) Handle(ctx context.Context, cmd SweepProgressionCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	result, err := h.advance(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	for _, adv := range result.Advanced {
		notify(ctx, h.notifier, h.logger, ports.Message{
			UserID: adv.UserID,
			Text:   h.catalog.Message(content.MessageNewDay, adv.Day.Int()),
		})

		msg, contentErr := trainingMessage(h.catalog, adv.UserID, adv.Day)
		if contentErr != nil {
			h.logger.ErrorContext(ctx, "no content for advanced day", "day", adv.Day.Int(), "error", contentErr)
			continue
		}
		notify(ctx, h.notifier, h.logger, msg)
	}

	h.logger.InfoContext(ctx, "progression sweep finished", "advanced", len(result.Advanced))
	return result, nil
}

func (h *SweepProgressionCommandHandler) advance(ctx context.Context) (SweepResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	events := uow.AnalyticsRepository()

	candidates, err := users.ListProgressionCandidates(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	now := h.clock.Now()
	var result SweepResult
	for _, participant := range candidates {
		ok, reason := h.policy.OnSweep(participant, now)
		if !ok {
			continue
		}

		if err = participant.AdvanceDay(); err != nil {
			return SweepResult{}, err
		}
		if err = users.Update(ctx, participant); err != nil {
			return SweepResult{}, err
		}

		day := participant.CurrentDay()
		data := map[string]any{"day": day.Int(), "reason": string(reason)}
		if err = recordEvent(ctx, events, participant.ID(), analytics.NewDayNotification, data, now); err != nil {
			return SweepResult{}, err
		}
		if err = recordEvent(ctx, events, participant.ID(), analytics.TrainingAutoSent, data, now); err != nil {
			return SweepResult{}, err
		}

		result.Advanced = append(result.Advanced, SweepAdvance{UserID: participant.ID(), Day: day, Reason: reason})
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepResult{}, err
	}

	return result, nil
}
