// Package guard lets domain types tell a constructed value from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in aggregates, commands and queries. Only the
// type's own constructor sets it, so a literal like Assignment{} fails Validate.
//
//	type RejectAssignmentCommand struct {
//	    assignmentID kernel.UUID
//	    guard        guard.ConstructorGuard
//	}
//
//	func (c RejectAssignmentCommand) Validate() error {
//	    return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
