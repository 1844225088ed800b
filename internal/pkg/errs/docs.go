// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Validation failures:
//   - ValueIsRequiredError (ErrValueIsRequired)
//   - ValueIsInvalidError (ErrValueIsInvalid)
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange)
//
// Lookups and storage:
//   - ObjectNotFoundError (ErrObjectNotFound)
//   - PersistenceError (ErrPersistence) wraps a failed store operation
//   - ErrVersionIsInvalid reports a lost optimistic update
//
// Course engine:
//   - ContentNotFoundError (ErrContentNotFound) for a day missing from the catalog
//   - TransportError (ErrTransport) for a message the notifier could not hand off
//   - NewInvalidTimezoneError (ErrInvalidTimezone) for a zone that fell back to the default
//
// Every error unwraps to its sentinel, so callers test with errors.Is and
// read details with errors.As.
package errs
