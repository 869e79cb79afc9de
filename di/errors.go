package di

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is matched by NotFoundError: no factory and no cached
	// instance exist for the requested key.
	ErrNotFound = errors.New("di: factory not found")

	// ErrCyclicDependency is matched by CyclicDependencyError and returned by
	// Value.Value when a cell is re-entered while its factory is running.
	ErrCyclicDependency = errors.New("di: cyclic dependency")

	// ErrWrongType is matched by WrongTypeError.
	ErrWrongType = errors.New("di: resolved instance has wrong type")

	// ErrNilFactory is matched by NilFactoryError.
	ErrNilFactory = errors.New("di: nil factory")
)

// NotFoundError is returned by Resolve when the exact key was never registered.
//
// It is distinct from "registered but not yet resolved", which is not an error.
type NotFoundError struct{ Key Key }

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	// Example: di: no factory registered for "*app.Service" (name "default")
	return "di: no factory registered for " + e.Key.quoted()
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CyclicDependencyError is returned when resolving Chain's last key requires
// resolving a key that is already under construction.
//
// Chain lists the keys from the first occurrence of the repeated key to the
// repeated key itself, e.g. [A B C A].
type CyclicDependencyError struct{ Chain []Key }

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, k := range e.Chain {
		parts[i] = k.String()
	}
	// Example: di: cyclic dependency: A[default] -> B[default] -> A[default]
	return "di: cyclic dependency: " + strings.Join(parts, " -> ")
}

// Is reports whether target is ErrCyclicDependency.
func (e *CyclicDependencyError) Is(target error) bool { return target == ErrCyclicDependency }

// WrongTypeError is returned by Invoke when the resolved instance cannot be
// asserted to the requested type.
type WrongTypeError struct {
	// Key is the key that was resolved.
	Key Key

	// Got is the dynamic type of the instance, "<nil>" for a nil interface.
	Got string

	// Want is the static type requested by the caller.
	Want string
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	// Example: di: "app.Store" (name "default") resolved to *app.Cache, want app.Store
	return "di: " + e.Key.quoted() + " resolved to " + e.Got + ", want " + e.Want
}

// Is reports whether target is ErrWrongType.
func (e *WrongTypeError) Is(target error) bool { return target == ErrWrongType }

// NilFactoryError is returned by Resolve when the key was registered with a nil factory.
type NilFactoryError struct{ Key Key }

// Error implements the error interface.
func (e *NilFactoryError) Error() string {
	return "di: nil factory registered for " + e.Key.quoted()
}

// Is reports whether target is ErrNilFactory.
func (e *NilFactoryError) Is(target error) bool { return target == ErrNilFactory }
