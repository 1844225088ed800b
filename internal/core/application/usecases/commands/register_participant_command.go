package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/guard"
)

var ErrRegisterParticipantCommandIsNotConstructed = errors.New(
	"RegisterParticipantCommand must be created via NewRegisterParticipantCommand constructor",
)

// RegisterParticipantCommand starts or restarts the course for a participant.
// The timezone is stored as given; unusable identifiers fall back to the
// default zone whenever a job is scheduled.
//
// Example:
//
//	cmd, err := NewRegisterParticipantCommand(kernel.UserID(42), "Asia/Tokyo", false)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type RegisterParticipantCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UserID
	timezone  string
	isPremium bool

	guard guard.ConstructorGuard
}

func NewRegisterParticipantCommand(userID kernel.UserID, timezone string, isPremium bool) (RegisterParticipantCommand, error) {
	if err := userID.Validate(); err != nil {
		return RegisterParticipantCommand{}, err
	}

	return RegisterParticipantCommand{
		userID:    userID,
		timezone:  timezone,
		isPremium: isPremium,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterParticipantCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParticipantCommandIsNotConstructed)
}

func (c RegisterParticipantCommand) UserID() kernel.UserID {
	return c.userID
}

func (c RegisterParticipantCommand) Timezone() string {
	return c.timezone
}

func (c RegisterParticipantCommand) IsPremium() bool {
	return c.isPremium
}
