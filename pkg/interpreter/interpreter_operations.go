package interpreter

import (
	"fmt"
	"math"
	"strings"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/runtime"
)

// maxRepeatLength bounds the result of text repetition.
const maxRepeatLength = 1 << 30

func applyBinaryOperator(op ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Type {
	case ast.TokenPlus:
		return addValues(op, left, right)
	case ast.TokenStar:
		return multiplyValues(op, left, right)
	case ast.TokenEqualEqual:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case ast.TokenBangEqual:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	}

	l, r, err := numberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op.Type {
	case ast.TokenGreater:
		return runtime.BoolValue{Val: l > r}, nil
	case ast.TokenGreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	case ast.TokenLess:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.TokenLessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	case ast.TokenMinus:
		return runtime.NumberValue{Val: l - r}, nil
	case ast.TokenSlash:
		return runtime.NumberValue{Val: l / r}, nil
	case ast.TokenCaret:
		return runtime.NumberValue{Val: math.Pow(l, r)}, nil
	default:
		return nil, &InternalError{Message: fmt.Sprintf("unsupported binary operator %s", op)}
	}
}

func numberOperands(op ast.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, newRuntimeError(TypeError, op, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}

func addValues(op ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case runtime.StringValue:
			return runtime.StringValue{Val: formatNumber(l.Val) + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + formatNumber(r.Val)}, nil
		}
	}
	return nil, newRuntimeError(TypeError, op, "Operands must be two numbers or two strings.")
}

func multiplyValues(op ast.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val * r.Val}, nil
		case runtime.StringValue:
			return repeatString(op, r.Val, l.Val)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.NumberValue); ok {
			return repeatString(op, l.Val, r.Val)
		}
	}
	return nil, newRuntimeError(TypeError, op, "Operands must be two numbers or a string and a number.")
}

func repeatString(op ast.Token, text string, count float64) (runtime.Value, error) {
	if math.IsNaN(count) || math.IsInf(count, 0) || count < 0 {
		return nil, newRuntimeError(TypeError, op, "Repeat count must be a non-negative finite number.")
	}
	times := math.Floor(count)
	if text == "" || times == 0 {
		return runtime.StringValue{Val: ""}, nil
	}
	// bound times before converting to int
	if times > maxRepeatLength || float64(len(text))*times > maxRepeatLength {
		return nil, newRuntimeError(TypeError, op, "Repeated string is too long.")
	}
	return runtime.StringValue{Val: strings.Repeat(text, int(times))}, nil
}

// valuesEqual is structural for primitives and identity for objects.
func valuesEqual(left, right runtime.Value) bool {
	if left == nil || right == nil {
		return left == right
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case runtime.NilValue:
		return true
	case runtime.BoolValue:
		return l.Val == right.(runtime.BoolValue).Val
	case runtime.NumberValue:
		r := right.(runtime.NumberValue).Val
		return l.Val == r || (math.IsNaN(l.Val) && math.IsNaN(r))
	case runtime.StringValue:
		return l.Val == right.(runtime.StringValue).Val
	default:
		return left == right
	}
}

func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case nil:
		return false
	case runtime.NilValue:
		return false
	case runtime.BoolValue:
		return v.Val
	default:
		return true
	}
}
