package commands

import (
	"context"
	"log/slog"

	"fitcourse/internal/core/ports"
)

// SystemJobArmer re-arms the system-wide jobs after a wipe.
type SystemJobArmer interface {
	ArmSystemJobs(ctx context.Context) error
}

// ClearAllDataCommandHandler disarms every timer and deactivates every job
// row before purging the tables, so no stale timer can fire for a deleted
// participant. Drafts are cleared last.
type ClearAllDataCommandHandler struct {
	scheduler   ports.JobScheduler
	maintenance ports.DataMaintenance
	drafts      ports.DraftStore
	systemJobs  SystemJobArmer
	logger      *slog.Logger
}

// NewClearAllDataCommandHandler builds the handler. systemJobs may be nil,
// in which case a rearm request is ignored.
func NewClearAllDataCommandHandler(
	scheduler ports.JobScheduler,
	maintenance ports.DataMaintenance,
	drafts ports.DraftStore,
	systemJobs SystemJobArmer,
	logger *slog.Logger,
) ClearAllDataCommandHandler {
	return ClearAllDataCommandHandler{
		scheduler:   scheduler,
		maintenance: maintenance,
		drafts:      drafts,
		systemJobs:  systemJobs,
		logger:      logger.With("component", "ClearAllDataCommandHandler"),
	}
}

func (h *ClearAllDataCommandHandler) Handle(ctx context.Context, cmd ClearAllDataCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.scheduler.CancelAll(ctx); err != nil {
		return err
	}

	if err := h.maintenance.PurgeAll(ctx); err != nil {
		return err
	}

	if err := h.drafts.Clear(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to clear rating drafts", "error", err)
	}

	if cmd.Rearm() && h.systemJobs != nil {
		if err := h.systemJobs.ArmSystemJobs(ctx); err != nil {
			return err
		}
	}

	h.logger.InfoContext(ctx, "all course data cleared")
	return nil
}
