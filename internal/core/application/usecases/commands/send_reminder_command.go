package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
	"fitcourse/internal/pkg/guard"
)

var ErrSendReminderCommandIsNotConstructed = errors.New(
	"SendReminderCommand must be created via NewSendReminderCommand constructor",
)

// SendReminderCommand is issued when a participant's daily reminder fires.
type SendReminderCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID
	kind   job.Type

	guard guard.ConstructorGuard
}

func NewSendReminderCommand(userID kernel.UserID, kind job.Type) (SendReminderCommand, error) {
	var kindErr error
	if !kind.IsReminder() {
		kindErr = errs.NewValueIsInvalidError("reminder kind")
	}
	if err := errors.Join(userID.Validate(), kindErr); err != nil {
		return SendReminderCommand{}, err
	}

	return SendReminderCommand{userID: userID, kind: kind, guard: guard.NewConstructorGuard()}, nil
}

func (c SendReminderCommand) Validate() error {
	return c.guard.Validate(ErrSendReminderCommandIsNotConstructed)
}

func (c SendReminderCommand) UserID() kernel.UserID {
	return c.userID
}

func (c SendReminderCommand) Kind() job.Type {
	return c.kind
}
