package interpreter

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/modules"
	"hcl/interpreter-go/pkg/runtime"
)

func testRegistry(t *testing.T) *modules.Registry {
	t.Helper()
	reg := modules.NewRegistry()
	err := reg.RegisterNative("time", func() map[string]runtime.Value {
		return map[string]runtime.Value{
			"clock": runtime.NewNativeFunction("clock", 0, func(*runtime.NativeCallContext, []runtime.Value) (runtime.Value, error) {
				return runtime.NumberValue{Val: 7}, nil
			}),
		}
	})
	if err != nil {
		t.Fatalf("register native: %v", err)
	}
	err = reg.RegisterLinked("math", func() *runtime.ModuleValue {
		return runtime.NewModule("math", map[string]runtime.Value{"pi": runtime.NumberValue{Val: 3}})
	})
	if err != nil {
		t.Fatalf("register linked: %v", err)
	}
	if err := reg.RegisterStd("list"); err != nil {
		t.Fatalf("register std: %v", err)
	}
	return reg
}

// mapLoader serves programs by path and records every load.
type mapLoader struct {
	programs map[string]func() *ast.Program
	loads    []string
}

func (l *mapLoader) Load(path string) (*ast.Program, error) {
	l.loads = append(l.loads, path)
	build, ok := l.programs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return build(), nil
}

func TestImportNativeMergesIntoGlobals(t *testing.T) {
	interp, out := newTestInterpreter(t, Config{Registry: testRegistry(t)})
	mustRun(t, interp, ast.Prog(
		ast.Import(ast.Str("time"), true),
		ast.Print(ast.Call(ast.Var("clock"))),
	))
	expectOutput(t, out, "7")

	imports := interp.Imports()
	if len(imports) != 1 || imports[0].Name != "time" || imports[0].Kind != modules.KindNative {
		t.Fatalf("unexpected ledger: %+v", imports)
	}
}

func TestImportLinkedBindsModule(t *testing.T) {
	interp, out := newTestInterpreter(t, Config{Registry: testRegistry(t)})
	mustRun(t, interp, ast.Prog(
		ast.Import(ast.Str("math"), true),
		ast.Print(ast.Get(ast.Var("math"), "pi")),
		ast.Print(ast.Var("math")),
	))
	expectOutput(t, out, "3<module math>")

	err := interp.Interpret(ast.Prog(ast.Print(ast.Get(ast.Var("math"), "tau"))))
	expectRuntimeError(t, err, ErrUndefinedProperty, "Undefined property 'tau'.")
}

func TestDuplicateImportFailsAndKeepsGlobals(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{Registry: testRegistry(t)})
	mustRun(t, interp, ast.Prog(ast.Import(ast.Str("time"), true)))
	before := interp.GlobalEnvironment().Keys()

	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("time"), true)))
	expectRuntimeError(t, err, ErrImportError, "Standard Module time is already imported.")

	err = interp.Interpret(ast.Prog(ast.Import(ast.Str("time"), false)))
	expectRuntimeError(t, err, ErrImportError, "Standard Module time is already imported.")

	after := interp.GlobalEnvironment().Keys()
	if len(after) != len(before) || !interp.GlobalEnvironment().Has("clock") {
		t.Fatalf("globals changed: %v -> %v", before, after)
	}
	if len(interp.Imports()) != 1 {
		t.Fatalf("ledger changed: %+v", interp.Imports())
	}
}

func TestImportUnknownStdModule(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{Registry: testRegistry(t)})
	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("nope"), true)))
	expectRuntimeError(t, err, ErrImportError, "Can't import Standard Module nope.")
	if len(interp.Imports()) != 0 {
		t.Fatalf("failed import recorded: %+v", interp.Imports())
	}
}

func TestImportRequiresText(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{Registry: testRegistry(t)})
	err := interp.Interpret(ast.Prog(ast.Import(ast.Num(1), true)))
	expectRuntimeError(t, err, ErrTypeError, "Expected a string.")
}

func TestImportSourceModule(t *testing.T) {
	path := filepath.Join("lib", "util.hcl")
	loader := &mapLoader{programs: map[string]func() *ast.Program{
		path: func() *ast.Program {
			return ast.Prog(
				ast.Print(ast.Str("loading ")),
				ast.Fn("helper", nil, ast.Ret(ast.Str("hi"))),
			)
		},
	}}
	interp, out := newTestInterpreter(t, Config{Loader: loader, BaseDir: "lib"})
	mustRun(t, interp, ast.Prog(
		ast.Import(ast.Str("util"), false),
		ast.Print(ast.Call(ast.Var("helper"))),
	))
	expectOutput(t, out, "loading hi")

	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("util"), false)))
	expectRuntimeError(t, err, ErrImportError, "Module util is already imported.")
	if len(loader.loads) != 1 {
		t.Fatalf("duplicate import reached the loader: %v", loader.loads)
	}
	imports := interp.Imports()
	if len(imports) != 1 || imports[0].Kind != modules.KindSource || imports[0].Std() {
		t.Fatalf("unexpected ledger: %+v", imports)
	}
}

func TestImportSourceKeepsResolvedDistances(t *testing.T) {
	param := ast.Var("x")
	loader := &mapLoader{programs: map[string]func() *ast.Program{
		"twice.hcl": func() *ast.Program {
			return ast.Prog(
				ast.Fn("twice", []string{"x"}, ast.Ret(ast.Bin("*", param, ast.Num(2)))),
			).Resolve(param, 0)
		},
	}}
	interp, out := newTestInterpreter(t, Config{Loader: loader})
	mustRun(t, interp, ast.Prog(
		ast.Import(ast.Str("twice"), false),
		ast.Print(ast.Call(ast.Var("twice"), ast.Num(4))),
	))
	expectOutput(t, out, "8")
}

func TestImportStdSourceModule(t *testing.T) {
	home := filepath.Join("opt", "hcl")
	loader := &mapLoader{programs: map[string]func() *ast.Program{
		modules.StdPath(home, "list"): func() *ast.Program {
			return ast.Prog(ast.Let("EMPTY", ast.Str("[]")))
		},
	}}
	interp, out := newTestInterpreter(t, Config{Registry: testRegistry(t), Loader: loader, Home: home})
	mustRun(t, interp, ast.Prog(
		ast.Import(ast.Str("list"), true),
		ast.Print(ast.Var("EMPTY")),
	))
	expectOutput(t, out, "[]")
	if entries := interp.Imports(); len(entries) != 1 || entries[0].Kind != modules.KindStd {
		t.Fatalf("unexpected ledger: %+v", entries)
	}

	homeless, _ := newTestInterpreter(t, Config{Registry: testRegistry(t), Loader: loader})
	err := homeless.Interpret(ast.Prog(ast.Import(ast.Str("list"), true)))
	expectRuntimeError(t, err, ErrImportError, "")
}

func TestImportLoaderFailure(t *testing.T) {
	interp, _ := newTestInterpreter(t, Config{Loader: &mapLoader{}})
	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("absent"), false)))
	expectRuntimeError(t, err, ErrImportError, "Can't load module absent: open absent.hcl: no such file")
	if len(interp.Imports()) != 0 {
		t.Fatalf("failed import recorded: %+v", interp.Imports())
	}

	unconfigured, _ := newTestInterpreter(t, Config{})
	err = unconfigured.Interpret(ast.Prog(ast.Import(ast.Str("absent"), false)))
	expectRuntimeError(t, err, ErrImportError, "")
}

func TestCircularSourceImport(t *testing.T) {
	loader := &mapLoader{programs: map[string]func() *ast.Program{
		"a.hcl": func() *ast.Program { return ast.Prog(ast.Import(ast.Str("b"), false)) },
		"b.hcl": func() *ast.Program { return ast.Prog(ast.Import(ast.Str("a"), false)) },
	}}
	interp, _ := newTestInterpreter(t, Config{Loader: loader})
	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("a"), false)))
	expectRuntimeError(t, err, ErrImportError, "Circular import of module a.")
	if len(interp.Imports()) != 0 {
		t.Fatalf("circular import recorded: %+v", interp.Imports())
	}
}

func TestNativeRegistryIsFrozenByInterpreter(t *testing.T) {
	reg := testRegistry(t)
	newTestInterpreter(t, Config{Registry: reg})
	if err := reg.RegisterStd("late"); !errors.Is(err, modules.ErrRegistryFrozen) {
		t.Fatalf("expected frozen registry, got %v", err)
	}
}

func TestNewUsesProcessRegistry(t *testing.T) {
	interp := New()
	if interp.registry != modules.Default || !modules.Default.Frozen() {
		t.Fatalf("New should adopt and freeze the default registry")
	}
	err := interp.Interpret(ast.Prog(ast.Import(ast.Str("anything"), true)))
	expectRuntimeError(t, err, ErrImportError, "Can't import Standard Module anything.")
}
