package runtime

import (
	"bufio"
	"fmt"
	"io"

	"hcl/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindModule:
		return "module"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// Callable is implemented by every value a call expression may invoke.
type Callable interface {
	Value
	Arity() int
	Variadic() bool
}

// Object is implemented by values that support property access.
type Object interface {
	Value
	Get(name string) (Value, error)
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Declaration   *ast.FunctionDeclaration
	Closure       *Environment
	IsInitializer bool
}

func NewFunction(decl *ast.FunctionDeclaration, closure *Environment, isInitializer bool) *FunctionValue {
	return &FunctionValue{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

func (v *FunctionValue) Variadic() bool { return false }

func (v *FunctionValue) Name() string { return v.Declaration.Name.Lexeme }

// Bind returns a copy of the function whose closure holds receiver as self.
func (v *FunctionValue) Bind(receiver Value) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define(ast.SelfName, receiver)
	return NewFunction(v.Declaration, env, v.IsInitializer)
}

// NativeCallContext gives host functions access to the interpreter's streams.
type NativeCallContext struct {
	Stdin   *bufio.Scanner
	Stdout  io.Writer
	Globals *Environment
}

// ReadLine returns the next line of standard input without its terminator.
func (c *NativeCallContext) ReadLine() (string, bool) {
	if c == nil || c.Stdin == nil {
		return "", false
	}
	if !c.Stdin.Scan() {
		return "", false
	}
	return c.Stdin.Text(), true
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name       string
	ArgCount   int
	IsVariadic bool
	Impl       NativeFunc
}

func NewNativeFunction(name string, arity int, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, ArgCount: arity, Impl: impl}
}

// NewVariadicNative builds a native that accepts any number of arguments.
func NewVariadicNative(name string, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, ArgCount: -1, IsVariadic: true, Impl: impl}
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ArgCount }

func (v *NativeFunctionValue) Variadic() bool { return v.IsVariadic }

//-----------------------------------------------------------------------------
// Modules
//-----------------------------------------------------------------------------

// ModuleValue is a statically linked module bound under its own name and
// read as Name.member.
type ModuleValue struct {
	Name    string
	Members map[string]Value
}

func NewModule(name string, members map[string]Value) *ModuleValue {
	if members == nil {
		members = make(map[string]Value)
	}
	return &ModuleValue{Name: name, Members: members}
}

func (v *ModuleValue) Kind() Kind { return KindModule }

func (v *ModuleValue) Get(name string) (Value, error) {
	if val, ok := v.Members[name]; ok {
		return val, nil
	}
	return nil, &UndefinedPropertyError{Name: name}
}
