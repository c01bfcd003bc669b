// Package guard provides a defensive construction pattern for value objects
// and commands. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects that bypassed their constructor fail
// validation instead of flowing through the system half-initialized.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. A zero-value guard fails validation, which distinguishes
// properly built objects from accidental zero values.
//
// Example:
//
//	type ConfirmPackCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewConfirmPackCommand(orderID kernel.UUID) (ConfirmPackCommand, error) {
//	    return ConfirmPackCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ConfirmPackCommand) Validate() error {
//	    return c.guard.Validate(ErrConfirmPackCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the enclosing object as
// properly constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the enclosing object was built via its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
