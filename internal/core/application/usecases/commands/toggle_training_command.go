package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrToggleTrainingCommandIsNotConstructed = errors.New(
	"ToggleTrainingCommand must be created via NewToggleTrainingCommand constructor",
)

// ToggleTrainingCommand flips the completion flag of the participant's
// current day.
type ToggleTrainingCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID

	guard guard.ConstructorGuard
}

func NewToggleTrainingCommand(userID kernel.UserID) (ToggleTrainingCommand, error) {
	if err := userID.Validate(); err != nil {
		return ToggleTrainingCommand{}, err
	}

	return ToggleTrainingCommand{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c ToggleTrainingCommand) Validate() error {
	return c.guard.Validate(ErrToggleTrainingCommandIsNotConstructed)
}

func (c ToggleTrainingCommand) UserID() kernel.UserID {
	return c.userID
}
