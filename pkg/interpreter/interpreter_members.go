package interpreter

import (
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateGetExpression(expr *ast.GetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := object.(runtime.Object)
	if !ok {
		return nil, newRuntimeError(TypeError, expr.Name, "Only instances have properties.")
	}
	val, err := obj.Get(expr.Name.Lexeme)
	if err != nil {
		return nil, fromEnvironment(expr.Name, err)
	}
	return val, nil
}

func (i *Interpreter) evaluateSetExpression(expr *ast.SetExpression, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	var store func(string, runtime.Value)
	switch target := object.(type) {
	case *runtime.InstanceValue:
		store = target.Set
	case *runtime.ClassValue:
		store = target.Set
	default:
		return nil, newRuntimeError(TypeError, expr.Name, "Only instances have fields.")
	}
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	store(expr.Name.Lexeme, value)
	return value, nil
}

// evaluateSuperExpression finds `super` at the resolved distance and the
// receiver one frame closer, then looks the method up from the superclass.
func (i *Interpreter) evaluateSuperExpression(expr *ast.SuperExpression, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok || distance < 1 {
		return nil, &InternalError{Message: fmt.Sprintf("super expression at %s was not resolved", expr.Keyword)}
	}
	superVal, err := env.GetAt(distance, ast.SuperName)
	if err != nil {
		return nil, fromEnvironment(expr.Keyword, err)
	}
	superclass, ok := superVal.(*runtime.ClassValue)
	if !ok {
		return nil, &InternalError{Message: fmt.Sprintf("super bound to %s", superVal.Kind())}
	}
	receiver, err := env.GetAt(distance-1, ast.SelfName)
	if err != nil {
		return nil, fromEnvironment(expr.Keyword, err)
	}

	lookup := superclass
	if _, isClass := receiver.(*runtime.ClassValue); isClass && superclass.Metaclass != nil {
		// class-level method: continue along the metaclass chain
		lookup = superclass.Metaclass
	}
	method := lookup.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(UndefinedProperty, expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(receiver), nil
}
