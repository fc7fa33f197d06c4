package interpreter

import (
	"errors"
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, newRuntimeError(TypeError, call.Paren, "Can only call functions and classes.")
	}
	if !fn.Variadic() && len(args) != fn.Arity() {
		return nil, newRuntimeError(ArityError, call.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return i.callValue(fn, args, call.Paren)
}

// CallFunction invokes a callable with the same arity rules as a call
// expression. Natives use it to call back into the language; it does not
// take the interpreter lock.
func (i *Interpreter) CallFunction(fn runtime.Callable, args []runtime.Value) (runtime.Value, error) {
	if !fn.Variadic() && len(args) != fn.Arity() {
		return nil, newRuntimeError(ArityError, ast.Token{}, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	val, err := i.callValue(fn, args, ast.Token{})
	if err != nil {
		return nil, escapedSignal(err)
	}
	return val, nil
}

func (i *Interpreter) callValue(fn runtime.Callable, args []runtime.Value, paren ast.Token) (runtime.Value, error) {
	switch callee := fn.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(callee, args)
	case *runtime.ClassValue:
		return i.instantiate(callee, args)
	case *runtime.NativeFunctionValue:
		return i.invokeNative(callee, args, paren)
	default:
		return nil, &InternalError{Message: fmt.Sprintf("callable of kind %s has no call implementation", fn.Kind())}
	}
}

// invokeFunction runs one call activation: a fresh frame under the closure
// holding the parameters. It is the boundary that catches returnSignal.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := fn.Closure.Extend()
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}
	err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		switch sig := err.(type) {
		case returnSignal:
			if fn.IsInitializer {
				return i.initializerReceiver(fn)
			}
			return sig.value, nil
		case breakSignal:
			return nil, &InternalError{Message: fmt.Sprintf("break escaped function %s", fn.Name())}
		default:
			return nil, err
		}
	}
	if fn.IsInitializer {
		return i.initializerReceiver(fn)
	}
	return runtime.NilValue{}, nil
}

// initializerReceiver yields the bound receiver; initializers return it
// whatever their body returns.
func (i *Interpreter) initializerReceiver(fn *runtime.FunctionValue) (runtime.Value, error) {
	self, err := fn.Closure.GetAt(0, ast.SelfName)
	if err != nil {
		return nil, &InternalError{Message: fmt.Sprintf("initializer %s is not bound", fn.Name()), Cause: err}
	}
	return self, nil
}

func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init := class.Initializer(); init != nil {
		if _, err := i.invokeFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (i *Interpreter) invokeNative(fn *runtime.NativeFunctionValue, args []runtime.Value, paren ast.Token) (runtime.Value, error) {
	if fn.Impl == nil {
		return nil, &InternalError{Message: fmt.Sprintf("native function %s has no implementation", fn.Name)}
	}
	val, err := fn.Impl(i.NativeContext(), args)
	if err != nil {
		var rtErr *RuntimeError
		if errors.As(err, &rtErr) {
			return nil, err
		}
		return nil, &RuntimeError{Kind: NativeError, Token: paren, Message: fmt.Sprintf("%s: %v", fn.Name, err), Cause: err}
	}
	if val == nil {
		return runtime.NilValue{}, nil
	}
	return val, nil
}
