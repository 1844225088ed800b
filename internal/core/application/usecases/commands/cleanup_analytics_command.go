package commands

import (
	"errors"

	"fitcourse/internal/pkg/guard"
)

var ErrCleanupAnalyticsCommandIsNotConstructed = errors.New(
	"CleanupAnalyticsCommand must be created via NewCleanupAnalyticsCommand constructor",
)

// CleanupAnalyticsCommand removes events past the retention period.
type CleanupAnalyticsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewCleanupAnalyticsCommand() CleanupAnalyticsCommand {
	return CleanupAnalyticsCommand{guard: guard.NewConstructorGuard()}
}

func (c CleanupAnalyticsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupAnalyticsCommandIsNotConstructed)
}
