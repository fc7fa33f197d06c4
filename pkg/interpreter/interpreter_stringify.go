package interpreter

import (
	"math"
	"strconv"

	"hcl/interpreter-go/pkg/runtime"
)

// Stringify returns the canonical text form used by print and by text
// concatenation.
func Stringify(val runtime.Value) string {
	switch v := val.(type) {
	case nil, runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case *runtime.FunctionValue:
		return "<fn " + v.Name() + ">"
	case *runtime.NativeFunctionValue:
		return "<native fn " + v.Name + ">"
	case *runtime.ClassValue:
		return v.Name
	case *runtime.InstanceValue:
		return v.Class.Name + " instance"
	case *runtime.ModuleValue:
		return "<module " + v.Name + ">"
	default:
		return "<" + val.Kind().String() + ">"
	}
}

// formatNumber prints integral values without a fractional part.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
