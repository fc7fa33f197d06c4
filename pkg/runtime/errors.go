package runtime

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrUndefinedProperty = errors.New("undefined property")
	// ErrScopeDepth means a resolved distance exceeds the environment chain,
	// which only a resolver defect can produce.
	ErrScopeDepth = errors.New("scope chain shorter than resolved distance")
)

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

func (e *UndefinedVariableError) Is(target error) bool {
	return target == ErrUndefinedVariable
}

type UndefinedPropertyError struct {
	Name string
}

func (e *UndefinedPropertyError) Error() string {
	return fmt.Sprintf("Undefined property '%s'.", e.Name)
}

func (e *UndefinedPropertyError) Is(target error) bool {
	return target == ErrUndefinedProperty
}

type ScopeDepthError struct {
	Distance int
	Reached  int
}

func (e *ScopeDepthError) Error() string {
	return fmt.Sprintf("scope distance %d exceeds environment chain (stopped after %d hops)", e.Distance, e.Reached)
}

func (e *ScopeDepthError) Is(target error) bool {
	return target == ErrScopeDepth
}
