package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var (
	ErrSubmitStructuredFeedbackCommandIsNotConstructed = errors.New(
		"SubmitStructuredFeedbackCommand must be created via NewSubmitStructuredFeedbackCommand constructor",
	)
	ErrSubmitDraftFeedbackCommandIsNotConstructed = errors.New(
		"SubmitDraftFeedbackCommand must be created via NewSubmitDraftFeedbackCommand constructor",
	)
)

// SubmitStructuredFeedbackCommand carries both ratings of a day.
//
// Example:
//
//	cmd, err := NewSubmitStructuredFeedbackCommand(kernel.UserID(42), 1, 5, 5, "")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	// result.Decision.Action == services.ScheduleOpen
type SubmitStructuredFeedbackCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UserID
	day        kernel.CourseDay
	difficulty int
	clarity    int
	comments   string

	guard guard.ConstructorGuard
}

func NewSubmitStructuredFeedbackCommand(
	userID kernel.UserID,
	day kernel.CourseDay,
	difficulty, clarity int,
	comments string,
) (SubmitStructuredFeedbackCommand, error) {
	_, dErr := feedback.NewRating("difficulty", difficulty)
	_, cErr := feedback.NewRating("clarity", clarity)
	if err := errors.Join(userID.Validate(), day.Validate(), dErr, cErr); err != nil {
		return SubmitStructuredFeedbackCommand{}, err
	}

	return SubmitStructuredFeedbackCommand{
		userID:     userID,
		day:        day,
		difficulty: difficulty,
		clarity:    clarity,
		comments:   comments,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitStructuredFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitStructuredFeedbackCommandIsNotConstructed)
}

func (c SubmitStructuredFeedbackCommand) UserID() kernel.UserID {
	return c.userID
}

func (c SubmitStructuredFeedbackCommand) Day() kernel.CourseDay {
	return c.day
}

func (c SubmitStructuredFeedbackCommand) Difficulty() int {
	return c.difficulty
}

func (c SubmitStructuredFeedbackCommand) Clarity() int {
	return c.clarity
}

func (c SubmitStructuredFeedbackCommand) Comments() string {
	return c.comments
}

// SubmitDraftFeedbackCommand submits whatever the session draft holds.
// Ratings that were never chosen default to feedback.DefaultRating.
type SubmitDraftFeedbackCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UserID
	day      kernel.CourseDay
	comments string

	guard guard.ConstructorGuard
}

func NewSubmitDraftFeedbackCommand(userID kernel.UserID, day kernel.CourseDay, comments string) (SubmitDraftFeedbackCommand, error) {
	if err := errors.Join(userID.Validate(), day.Validate()); err != nil {
		return SubmitDraftFeedbackCommand{}, err
	}

	return SubmitDraftFeedbackCommand{
		userID:   userID,
		day:      day,
		comments: comments,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitDraftFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDraftFeedbackCommandIsNotConstructed)
}

func (c SubmitDraftFeedbackCommand) UserID() kernel.UserID {
	return c.userID
}

func (c SubmitDraftFeedbackCommand) Day() kernel.CourseDay {
	return c.day
}

func (c SubmitDraftFeedbackCommand) Comments() string {
	return c.comments
}
