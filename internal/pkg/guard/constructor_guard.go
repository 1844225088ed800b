// Package guard provides the ConstructorGuard used by commands and queries to
// detect zero-value instances that bypassed their constructor.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into value types whose zero value is not usable.
//
// Example:
//
//	type ToggleTrainingCommand struct {
//	    userID kernel.UserID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c ToggleTrainingCommand) Validate() error {
//	    return c.guard.Validate(ErrToggleTrainingCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// for a zero-value guard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
