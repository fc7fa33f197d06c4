package interpreter

import (
	"errors"
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

// ErrorKind classifies runtime errors raised by the evaluator.
type ErrorKind int

const (
	TypeError ErrorKind = iota
	UndefinedVariable
	UndefinedProperty
	ArityError
	ImportError
	NativeError
)

var (
	ErrTypeError         = errors.New("type error")
	ErrUndefinedVariable = runtime.ErrUndefinedVariable
	ErrUndefinedProperty = runtime.ErrUndefinedProperty
	ErrArityError        = errors.New("arity error")
	ErrImportError       = errors.New("import error")
	ErrNativeError       = errors.New("native error")
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedProperty:
		return "UndefinedProperty"
	case ArityError:
		return "ArityError"
	case ImportError:
		return "ImportError"
	case NativeError:
		return "NativeError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case TypeError:
		return ErrTypeError
	case UndefinedVariable:
		return ErrUndefinedVariable
	case UndefinedProperty:
		return ErrUndefinedProperty
	case ArityError:
		return ErrArityError
	case ImportError:
		return ErrImportError
	case NativeError:
		return ErrNativeError
	default:
		return nil
	}
}

// RuntimeError is a language-level failure. It stops the current batch and
// is reported once by the host.
type RuntimeError struct {
	Kind    ErrorKind
	Token   ast.Token
	Message string
	Cause   error
}

func newRuntimeError(kind ErrorKind, token ast.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Token: token, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
	}
	return e.Message
}

func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

func (e *RuntimeError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// InternalError reports a defect in the core or its resolver input, such as
// a signal escaping its boundary. It is never a user-facing language error.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Message, e.Cause)
	}
	return "internal error: " + e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// fromEnvironment attaches the offending token to an environment failure.
func fromEnvironment(token ast.Token, err error) error {
	if err == nil {
		return nil
	}
	var undefinedVar *runtime.UndefinedVariableError
	if errors.As(err, &undefinedVar) {
		return &RuntimeError{Kind: UndefinedVariable, Token: token, Message: undefinedVar.Error(), Cause: err}
	}
	var undefinedProp *runtime.UndefinedPropertyError
	if errors.As(err, &undefinedProp) {
		return &RuntimeError{Kind: UndefinedProperty, Token: token, Message: undefinedProp.Error(), Cause: err}
	}
	if errors.Is(err, runtime.ErrScopeDepth) {
		return &InternalError{Message: fmt.Sprintf("resolving %s", token), Cause: err}
	}
	return err
}
