// Package notifier delivers outbound course messages. The chat transport
// subscribes to a Redis channel; when Redis is not configured messages are
// written to the log instead.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"

	"fitcourse/internal/core/ports"
	"fitcourse/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "fitcourse:outbound"

// RedisNotifier publishes JSON-encoded ports.Message values.
type RedisNotifier struct {
	rdb     goredis.UniversalClient
	channel string
	logger  *slog.Logger
}

func NewRedisNotifier(rdb goredis.UniversalClient, channel string, logger *slog.Logger) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{
		rdb:     rdb,
		channel: channel,
		logger:  logger.With("component", "RedisNotifier"),
	}
}

// Notify publishes msg. Any failure is returned as errs.TransportError.
func (n *RedisNotifier) Notify(ctx context.Context, msg ports.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return errs.NewTransportError(msg.UserID.Int64(), err)
	}

	receivers, err := n.rdb.Publish(ctx, n.channel, raw).Result()
	if err != nil {
		return errs.NewTransportError(msg.UserID.Int64(), err)
	}
	if receivers == 0 {
		n.logger.WarnContext(ctx, "message published without subscribers",
			"user_id", msg.UserID.Int64(), "channel", n.channel)
	}
	return nil
}

// LogNotifier writes messages to the log. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "LogNotifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg ports.Message) error {
	n.logger.InfoContext(ctx, "outbound message",
		"user_id", msg.UserID.Int64(),
		"text", msg.Text,
		"image", msg.Image,
		"buttons", len(msg.Buttons),
	)
	return nil
}
