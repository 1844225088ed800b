package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var (
	ErrUpdateRatingDraftCommandIsNotConstructed = errors.New(
		"UpdateRatingDraftCommand must be created via NewUpdateRatingDraftCommand constructor",
	)
	ErrRatingIsRequired = errors.New("at least one rating is required")
)

// UpdateRatingDraftCommand sets one or both ratings of the in-flight draft.
// A nil rating keeps the current draft value.
type UpdateRatingDraftCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UserID
	day        kernel.CourseDay
	difficulty *int
	clarity    *int

	guard guard.ConstructorGuard
}

func NewUpdateRatingDraftCommand(
	userID kernel.UserID,
	day kernel.CourseDay,
	difficulty, clarity *int,
) (UpdateRatingDraftCommand, error) {
	if difficulty == nil && clarity == nil {
		return UpdateRatingDraftCommand{}, ErrRatingIsRequired
	}

	var ratingErrs []error
	if difficulty != nil {
		_, err := feedback.NewRating("difficulty", *difficulty)
		ratingErrs = append(ratingErrs, err)
	}
	if clarity != nil {
		_, err := feedback.NewRating("clarity", *clarity)
		ratingErrs = append(ratingErrs, err)
	}
	if err := errors.Join(append(ratingErrs, userID.Validate(), day.Validate())...); err != nil {
		return UpdateRatingDraftCommand{}, err
	}

	return UpdateRatingDraftCommand{
		userID:     userID,
		day:        day,
		difficulty: difficulty,
		clarity:    clarity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRatingDraftCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRatingDraftCommandIsNotConstructed)
}

func (c UpdateRatingDraftCommand) UserID() kernel.UserID {
	return c.userID
}

func (c UpdateRatingDraftCommand) Day() kernel.CourseDay {
	return c.day
}

func (c UpdateRatingDraftCommand) Difficulty() *int {
	return c.difficulty
}

func (c UpdateRatingDraftCommand) Clarity() *int {
	return c.clarity
}
