// Package guard lets value objects, entities and commands detect that they
// were built through their constructor rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero value guard
// when the caller does not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose invariants are enforced by a
// constructor. Only NewConstructorGuard produces a guard that validates.
//
//	type AddressLine struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewAddressLine(v string) (AddressLine, error) {
//	    if v == "" {
//	        return AddressLine{}, errs.NewValueIsRequiredError("address")
//	    }
//	    return AddressLine{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a AddressLine) Validate() error {
//	    return a.guard.Validate(ErrAddressLineNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
