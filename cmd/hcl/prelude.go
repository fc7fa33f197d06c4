package main

import (
	"fmt"
	"time"

	"hcl/interpreter-go/pkg/interpreter"
	"hcl/interpreter-go/pkg/runtime"
)

// hostPrelude is merged into the global scope of every program the CLI runs.
func hostPrelude() map[string]runtime.Value {
	return map[string]runtime.Value{
		"clock": runtime.NewNativeFunction("clock", 0, func(*runtime.NativeCallContext, []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / float64(time.Second)}, nil
		}),
		"input": runtime.NewNativeFunction("input", 0, func(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
			line, ok := ctx.ReadLine()
			if !ok {
				return runtime.NilValue{}, nil
			}
			return runtime.StringValue{Val: line}, nil
		}),
		"println": runtime.NewVariadicNative("println", func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			for idx, arg := range args {
				if idx > 0 {
					fmt.Fprint(ctx.Stdout, " ")
				}
				fmt.Fprint(ctx.Stdout, interpreter.Stringify(arg))
			}
			_, err := fmt.Fprintln(ctx.Stdout)
			return runtime.NilValue{}, err
		}),
	}
}
