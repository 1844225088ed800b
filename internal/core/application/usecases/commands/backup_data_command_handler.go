package commands

import (
	"context"
	"log/slog"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/ports"
)

// BackupDataCommandHandler reads a snapshot and hands it to the sink.
type BackupDataCommandHandler struct {
	maintenance ports.DataMaintenance
	sink        ports.BackupSink
	clock       kernel.Clock
	logger      *slog.Logger
}

func NewBackupDataCommandHandler(
	maintenance ports.DataMaintenance,
	sink ports.BackupSink,
	clock kernel.Clock,
	logger *slog.Logger,
) BackupDataCommandHandler {
	return BackupDataCommandHandler{
		maintenance: maintenance,
		sink:        sink,
		clock:       clock,
		logger:      logger.With("component", "BackupDataCommandHandler"),
	}
}

// Handle returns where the backup was written.
func (h *BackupDataCommandHandler) Handle(ctx context.Context, cmd BackupDataCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	snapshot, err := h.maintenance.Snapshot(ctx, h.clock.Now())
	if err != nil {
		return "", err
	}

	location, err := h.sink.Write(ctx, snapshot)
	if err != nil {
		return "", err
	}

	h.logger.InfoContext(ctx, "backup written",
		"location", location, "users", len(snapshot.Users), "feedback", len(snapshot.Feedback))
	return location, nil
}
