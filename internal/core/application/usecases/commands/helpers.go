package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/ports"
)

// recordEvent appends an analytics event inside the caller's transaction.
func recordEvent(
	ctx context.Context,
	repo ports.AnalyticsRepository,
	userID kernel.UserID,
	eventType string,
	data map[string]any,
	now time.Time,
) error {
	event, err := analytics.NewEvent(userID, eventType, data, now)
	if err != nil {
		return err
	}
	return repo.Record(ctx, event)
}

// notify hands msg to the transport. Failures are logged and swallowed:
// the state change the message reports is already committed.
func notify(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, msg ports.Message) {
	if err := notifier.Notify(ctx, msg); err != nil {
		logger.WarnContext(ctx, "failed to notify participant",
			"user_id", msg.UserID.Int64(), "error", err)
	}
}

// participantZone resolves the participant's zone once per decision, falling
// back to fallbackID for unusable identifiers.
func participantZone(ctx context.Context, u *user.User, fallbackID string, logger *slog.Logger) kernel.Zone {
	zone, err := kernel.ResolveZoneWithDefault(u.Timezone(), fallbackID)
	if err != nil {
		logger.WarnContext(ctx, "participant timezone is unusable, using fallback",
			"user_id", u.ID().Int64(), "timezone", u.Timezone(), "zone", zone.ID(), "error", err)
	}
	return zone
}

// trainingMessage is the content message of day. Every path that delivers a
// training builds it here.
func trainingMessage(catalog *content.Catalog, userID kernel.UserID, day kernel.CourseDay) (ports.Message, error) {
	training, err := catalog.Day(day.Int())
	if err != nil {
		return ports.Message{}, err
	}
	return ports.Message{
		UserID:  userID,
		Text:    training.Render(),
		Image:   training.Image,
		Buttons: []ports.Button{trainingButton(day)},
	}, nil
}

// trainingButton lets the participant mark the training of day as done.
func trainingButton(day kernel.CourseDay) ports.Button {
	return ports.Button{Text: "Done", Data: fmt.Sprintf("training_done_%d", day.Int())}
}

// openTrainingButton asks the transport to request the content of day.
func openTrainingButton(day kernel.CourseDay) ports.Button {
	return ports.Button{Text: "Start training", Data: fmt.Sprintf("training_%d", day.Int())}
}
