package kernel

import (
	"fmt"
	"strconv"

	"fitcourse/internal/pkg/errs"
)

// UserID is the chat-platform numeric identity of a participant.
type UserID int64

var ErrUserIDIsInvalid = errs.NewValueIsInvalidError("user id")

func NewUserID(raw int64) (UserID, error) {
	id := UserID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseUserID parses a decimal id taken from a route or a job key.
func ParseUserID(s string) (UserID, error) {
	raw, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("user id", err)
	}
	return NewUserID(raw)
}

func (id UserID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not positive", int64(id)))
	}
	return nil
}

func (id UserID) Int64() int64 {
	return int64(id)
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
