package commands

import (
	"context"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/kernel"
)

// CleanupAnalyticsCommandHandler deletes events older than analytics.Retention.
type CleanupAnalyticsCommandHandler struct {
	uowFactory AnalyticsUoWFactory
	clock      kernel.Clock
}

func NewCleanupAnalyticsCommandHandler(uowFactory AnalyticsUoWFactory, clock kernel.Clock) CleanupAnalyticsCommandHandler {
	return CleanupAnalyticsCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of removed events.
func (h *CleanupAnalyticsCommandHandler) Handle(ctx context.Context, cmd CleanupAnalyticsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.AnalyticsRepository().DeleteOlderThan(ctx, h.clock.Now().Add(-analytics.Retention))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
