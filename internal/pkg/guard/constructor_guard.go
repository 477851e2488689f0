// Package guard provides a defensive-programming primitive that ensures
// value objects, commands, and queries are only created through their
// designated constructor functions.
//
// Embedding a ConstructorGuard in a struct makes zero-value instances
// detectable: the guard's flag is only set when the object goes through
// its constructor, so Validate fails for bypassed construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value fails validation; only NewConstructorGuard produces
// a guard that passes.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its holder as properly constructed.
// Call it inside the holder's constructor function.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the holder was constructed through its constructor.
// For zero-value guards it returns validationError, or
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
