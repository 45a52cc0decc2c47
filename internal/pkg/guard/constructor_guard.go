// Package guard holds the constructor guard embedded by value objects and
// aggregates so that zero values can be told apart from constructed ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor.
//
// Embed it in a value object, set it with NewConstructorGuard inside the
// constructor and check it from the object's Validate method:
//
//	type Number struct {
//	    value int
//	    guard guard.ConstructorGuard
//	}
//
//	func NewNumber(v int) (Number, error) {
//	    if v < MinNumber || v > MaxNumber {
//	        return Number{}, errs.NewValueIsOutOfRangeError("number", v, MinNumber, MaxNumber)
//	    }
//	    return Number{value: v, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (n Number) Validate() error {
//	    return n.guard.Validate(ErrNumberIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
