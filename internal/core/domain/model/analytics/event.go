// Package analytics defines the participant activity events recorded by the
// course engine.
package analytics

import (
	"errors"
	"time"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
)

// Event types.
const (
	TrainingToggled    = "training_toggled"
	TrainingViewed     = "training_viewed"
	FeedbackSubmitted  = "feedback_submitted"
	DayOpened          = "day_opened"
	NewDayNotification = "new_day_notification"
	TrainingAutoSent   = "training_auto_sent"
	ReminderSent       = "reminder_sent"
	Registered         = "registered"
)

// Retention is how long events are kept before the cleanup job removes them.
const Retention = 90 * 24 * time.Hour

var ErrEventTypeIsRequired = errs.NewValueIsRequiredError("event type")

// Event is one analytics row.
type Event struct {
	userID    kernel.UserID
	eventType string
	data      map[string]any
	createdAt time.Time
}

func NewEvent(userID kernel.UserID, eventType string, data map[string]any, now time.Time) (Event, error) {
	if err := errors.Join(userID.Validate(), requireType(eventType)); err != nil {
		return Event{}, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return Event{userID: userID, eventType: eventType, data: data, createdAt: now}, nil
}

func (e Event) UserID() kernel.UserID {
	return e.userID
}

func (e Event) Type() string {
	return e.eventType
}

func (e Event) Data() map[string]any {
	return e.data
}

func (e Event) CreatedAt() time.Time {
	return e.createdAt
}

func requireType(eventType string) error {
	if eventType == "" {
		return ErrEventTypeIsRequired
	}
	return nil
}
