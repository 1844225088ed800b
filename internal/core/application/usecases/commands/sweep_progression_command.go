package commands

import (
	"errors"

	"fitcourse/internal/pkg/guard"
)

var ErrSweepProgressionCommandIsNotConstructed = errors.New(
	"SweepProgressionCommand must be created via NewSweepProgressionCommand constructor",
)

// SweepProgressionCommand re-evaluates every participant against the
// elapsed-time rule. It carries no parameters.
type SweepProgressionCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewSweepProgressionCommand() SweepProgressionCommand {
	return SweepProgressionCommand{guard: guard.NewConstructorGuard()}
}

func (c SweepProgressionCommand) Validate() error {
	return c.guard.Validate(ErrSweepProgressionCommandIsNotConstructed)
}
