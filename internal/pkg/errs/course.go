package errs

import (
	"errors"
	"fmt"
)

var (
	ErrPersistence     = errors.New("persistence failure")
	ErrContentNotFound = errors.New("content not found")
	ErrTransport       = errors.New("transport failure")
	ErrInvalidTimezone = errors.New("timezone is invalid")
)

// PersistenceError wraps a storage I/O failure. Op names the store operation
// that failed, e.g. "put job" or "update user".
type PersistenceError struct {
	Op    string
	Cause error
}

func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Op), e.Cause)
}

// Unwrap exposes both the sentinel and the driver error.
func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Cause}
}

// ContentNotFoundError is returned when a course day has no content defined.
type ContentNotFoundError struct {
	Day int
}

func NewContentNotFoundError(day int) *ContentNotFoundError {
	return &ContentNotFoundError{Day: day}
}

func (e *ContentNotFoundError) Error() string {
	return fmt.Sprintf("%s: day %d", ErrContentNotFound, e.Day)
}

func (e *ContentNotFoundError) Unwrap() error {
	return ErrContentNotFound
}

// TransportError is returned by notifiers when a message could not be handed
// over to the messaging transport.
type TransportError struct {
	UserID int64
	Cause  error
}

func NewTransportError(userID int64, cause error) *TransportError {
	return &TransportError{UserID: userID, Cause: cause}
}

func (e *TransportError) Error() string {
	return withCause(fmt.Sprintf("%s: user %d", ErrTransport, e.UserID), e.Cause)
}

func (e *TransportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Cause}
}

// NewInvalidTimezoneError reports the zone identifier that could not be loaded.
func NewInvalidTimezoneError(zoneID string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, zoneID)
	}
	return fmt.Errorf("%w: %q: %w", ErrInvalidTimezone, zoneID, cause)
}
