package interpreter

import (
	"hcl/interpreter-go/pkg/runtime"
)

// Signals travel up the error return path but are never runtime errors:
// callers tell them apart by type.

type breakSignal struct{}

func (breakSignal) Error() string {
	return "break"
}

type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}

// escapedSignal turns a signal that left every boundary into an internal error.
func escapedSignal(err error) error {
	switch err.(type) {
	case breakSignal:
		return &InternalError{Message: "break outside of a loop"}
	case returnSignal:
		return &InternalError{Message: "return outside of a function"}
	default:
		return err
	}
}
