package commands

import (
	"errors"

	"fitcourse/internal/pkg/guard"
)

var ErrBackupDataCommandIsNotConstructed = errors.New(
	"BackupDataCommand must be created via NewBackupDataCommand constructor",
)

// BackupDataCommand writes a snapshot of the database.
type BackupDataCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewBackupDataCommand() BackupDataCommand {
	return BackupDataCommand{guard: guard.NewConstructorGuard()}
}

func (c BackupDataCommand) Validate() error {
	return c.guard.Validate(ErrBackupDataCommandIsNotConstructed)
}
