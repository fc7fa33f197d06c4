package interpreter

import (
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.VariableExpression:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.SelfExpression:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.AssignExpression:
		return i.evaluateAssignExpression(n, env)
	case *ast.GetExpression:
		return i.evaluateGetExpression(n, env)
	case *ast.SetExpression:
		return i.evaluateSetExpression(n, env)
	case *ast.SuperExpression:
		return i.evaluateSuperExpression(n, env)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unsupported expression type: %s", node.NodeType())}
	}
}

func (i *Interpreter) lookUpVariable(name ast.Token, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		val, err := env.GetAt(distance, name.Lexeme)
		if err != nil {
			return nil, fromEnvironment(name, err)
		}
		return val, nil
	}
	val, err := i.global.Get(name.Lexeme)
	if err != nil {
		return nil, fromEnvironment(name, err)
	}
	return val, nil
}

func (i *Interpreter) evaluateAssignExpression(expr *ast.AssignExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[expr]; ok {
		err = env.AssignAt(distance, expr.Name.Lexeme, value)
	} else {
		err = i.global.Assign(expr.Name.Lexeme, value)
	}
	if err != nil {
		return nil, fromEnvironment(expr.Name, err)
	}
	return value, nil
}

func (i *Interpreter) evaluateLogicalExpression(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case ast.TokenOr:
		if isTruthy(left) {
			return left, nil
		}
	case ast.TokenAnd:
		if !isTruthy(left) {
			return left, nil
		}
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unsupported logical operator %s", expr.Operator)}
	}
	return i.evaluateExpression(expr.Right, env)
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case ast.TokenBang:
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	case ast.TokenMinus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, newRuntimeError(TypeError, expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unsupported unary operator %s", expr.Operator)}
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right)
}
