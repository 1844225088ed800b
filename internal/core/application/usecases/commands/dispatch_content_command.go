package commands

import (
	"errors"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"
	"fitcourse/internal/pkg/guard"
)

var ErrDispatchContentCommandIsNotConstructed = errors.New(
	"DispatchContentCommand must be created via NewDispatchContentCommand constructor",
)

// Origin tells who asked for content. Only participant requests count as
// activity.
type Origin int

const (
	OriginUserRequest Origin = iota + 1
	OriginScheduler
)

func (o Origin) String() string {
	switch o {
	case OriginUserRequest:
		return "user_request"
	case OriginScheduler:
		return "scheduler"
	default:
		return "unknown"
	}
}

// DispatchContentCommand sends the training of a day to a participant.
type DispatchContentCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UserID
	day    kernel.CourseDay
	origin Origin

	guard guard.ConstructorGuard
}

func NewDispatchContentCommand(userID kernel.UserID, day kernel.CourseDay, origin Origin) (DispatchContentCommand, error) {
	var originErr error
	if origin != OriginUserRequest && origin != OriginScheduler {
		originErr = errs.NewValueIsInvalidError("origin")
	}
	if err := errors.Join(userID.Validate(), day.Validate(), originErr); err != nil {
		return DispatchContentCommand{}, err
	}

	return DispatchContentCommand{
		userID: userID,
		day:    day,
		origin: origin,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchContentCommand) Validate() error {
	return c.guard.Validate(ErrDispatchContentCommandIsNotConstructed)
}

func (c DispatchContentCommand) UserID() kernel.UserID {
	return c.userID
}

func (c DispatchContentCommand) Day() kernel.CourseDay {
	return c.day
}

func (c DispatchContentCommand) Origin() Origin {
	return c.origin
}
