package commands

import (
	"context"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/kernel"
)

// ToggleTrainingCommandHandler flips training completion without advancing
// the day. An open_day job armed earlier stays armed even when the flag goes
// back to false: the job firing decides the transition.
type ToggleTrainingCommandHandler struct {
	uowFactory UserUoWFactory
	clock      kernel.Clock
}

func NewToggleTrainingCommandHandler(uowFactory UserUoWFactory, clock kernel.Clock) ToggleTrainingCommandHandler {
	return ToggleTrainingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns the new completion flag.
func (h *ToggleTrainingCommandHandler) Handle(ctx context.Context, cmd ToggleTrainingCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

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

	now := h.clock.Now()
	completed := participant.ToggleTraining(now)
	if err = repo.Update(ctx, participant); err != nil {
		return false, err
	}

	if err = recordEvent(ctx, uow.AnalyticsRepository(), participant.ID(), analytics.TrainingToggled,
		map[string]any{"day": participant.CurrentDay().Int(), "completed": completed}, now); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return completed, nil
}
