package commands

import (
	"errors"
	"strings"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrSubmitTextFeedbackCommandIsNotConstructed = errors.New(
	"SubmitTextFeedbackCommand must be created via NewSubmitTextFeedbackCommand constructor",
)

// SubmitTextFeedbackCommand carries a free-text complaint about a day.
type SubmitTextFeedbackCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID
	day    kernel.CourseDay
	text   string

	guard guard.ConstructorGuard
}

func NewSubmitTextFeedbackCommand(userID kernel.UserID, day kernel.CourseDay, text string) (SubmitTextFeedbackCommand, error) {
	var textErr error
	if strings.TrimSpace(text) == "" {
		textErr = feedback.ErrCommentIsRequired
	}
	if err := errors.Join(userID.Validate(), day.Validate(), textErr); err != nil {
		return SubmitTextFeedbackCommand{}, err
	}

	return SubmitTextFeedbackCommand{
		userID: userID,
		day:    day,
		text:   text,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitTextFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitTextFeedbackCommandIsNotConstructed)
}

func (c SubmitTextFeedbackCommand) UserID() kernel.UserID {
	return c.userID
}

func (c SubmitTextFeedbackCommand) Day() kernel.CourseDay {
	return c.day
}

func (c SubmitTextFeedbackCommand) Text() string {
	return c.text
}
