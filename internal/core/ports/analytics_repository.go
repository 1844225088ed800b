package ports

import (
	"context"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
)

// AnalyticsRepository stores activity events.
type AnalyticsRepository interface {
	Record(ctx context.Context, event analytics.Event) error
	// DeleteOlderThan removes events created before cutoff and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
