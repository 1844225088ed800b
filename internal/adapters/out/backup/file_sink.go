// Package backup writes database snapshots to the local filesystem.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fitcourse/internal/core/ports"
)

// FileSink writes each snapshot to <dir>/backup_YYYYmmdd_HHMMSS.json.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "backups"
	}
	return &FileSink{dir: dir}
}

// Write stores the snapshot through a temp file and rename, so readers never
// see a partial backup.
func (s *FileSink) Write(_ context.Context, snapshot ports.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("backup_%s.json", snapshot.TakenAt.UTC().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("publish snapshot: %w", err)
	}

	return path, nil
}
