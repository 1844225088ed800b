package jobs

import (
	"context"
	"log/slog"
)

// cronLogger routes cron's internal logging to slog. Cron reports every wake
// up through Info, so it is logged at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.DebugContext(context.Background(), "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.ErrorContext(context.Background(), "cron: "+msg, append(keysAndValues, "error", err)...)
}
