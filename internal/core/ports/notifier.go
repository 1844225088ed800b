package ports

import (
	"context"

	"fitcourse/internal/core/domain/model/kernel"
)

// Button is an inline action offered with a message. Data is opaque to the
// transport and comes back with the participant's tap.
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// Message is a transport-neutral outbound message.
type Message struct {
	UserID  kernel.UserID `json:"user_id"`
	Text    string        `json:"text"`
	Image   string        `json:"image,omitempty"`
	Buttons []Button      `json:"buttons,omitempty"`
}

// Notifier hands messages to the chat transport. Failures are returned as
// errs.TransportError; callers log them and never roll back committed state.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
