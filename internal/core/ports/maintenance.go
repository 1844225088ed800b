package ports

import (
	"context"
	"time"
)

// Snapshot is the content of a backup file.
type Snapshot struct {
	TakenAt   time.Time        `json:"taken_at"`
	Users     []map[string]any `json:"users"`
	Feedback  []map[string]any `json:"feedback"`
	Jobs      []map[string]any `json:"jobs"`
	Analytics map[string]int64 `json:"analytics_by_type"`
}

// DataMaintenance covers whole-database operations of the admin surface.
type DataMaintenance interface {
	// PurgeAll removes participants, feedback and analytics and deactivates
	// every job row in one transaction.
	PurgeAll(ctx context.Context) error
	// Snapshot reads the data included in backups.
	Snapshot(ctx context.Context, now time.Time) (Snapshot, error)
}

// BackupSink persists a snapshot and returns where it was written.
type BackupSink interface {
	Write(ctx context.Context, snapshot Snapshot) (string, error)
}
