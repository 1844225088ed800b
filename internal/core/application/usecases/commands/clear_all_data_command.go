package commands

import (
	"errors"

	"fitcourse/internal/pkg/guard"
)

var ErrClearAllDataCommandIsNotConstructed = errors.New(
	"ClearAllDataCommand must be created via NewClearAllDataCommand constructor",
)

// ClearAllDataCommand wipes every participant and cancels every job. With
// rearm set the system jobs are armed again afterwards; otherwise no row and
// no timer survives.
type ClearAllDataCommand struct { //nolint:recvcheck //using for validation
	rearm bool

	guard guard.ConstructorGuard
}

func NewClearAllDataCommand(rearm bool) ClearAllDataCommand {
	return ClearAllDataCommand{rearm: rearm, guard: guard.NewConstructorGuard()}
}

func (c ClearAllDataCommand) Rearm() bool {
	return c.rearm
}

func (c ClearAllDataCommand) Validate() error {
	return c.guard.Validate(ErrClearAllDataCommandIsNotConstructed)
}
