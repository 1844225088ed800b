package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrOpenCourseDayCommandIsNotConstructed = errors.New(
	"OpenCourseDayCommand must be created via NewOpenCourseDayCommand constructor",
)

// OpenCourseDayCommand is issued when an open_day job fires.
type OpenCourseDayCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID
	day    kernel.CourseDay

	guard guard.ConstructorGuard
}

func NewOpenCourseDayCommand(userID kernel.UserID, day kernel.CourseDay) (OpenCourseDayCommand, error) {
	if err := errors.Join(userID.Validate(), day.Validate()); err != nil {
		return OpenCourseDayCommand{}, err
	}

	return OpenCourseDayCommand{userID: userID, day: day, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenCourseDayCommand) Validate() error {
	return c.guard.Validate(ErrOpenCourseDayCommandIsNotConstructed)
}

func (c OpenCourseDayCommand) UserID() kernel.UserID {
	return c.userID
}

func (c OpenCourseDayCommand) Day() kernel.CourseDay {
	return c.day
}
