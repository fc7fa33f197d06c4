package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/modules"
)

// newTestInterpreter returns an interpreter writing to a buffer and backed
// by a private registry, so tests never freeze modules.Default.
func newTestInterpreter(t *testing.T, cfg Config) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg.Stdout = out
	if cfg.Stdin == nil {
		cfg.Stdin = strings.NewReader("")
	}
	if cfg.Registry == nil {
		cfg.Registry = modules.NewRegistry()
	}
	return NewWithConfig(cfg), out
}

func mustRun(t *testing.T, interp *Interpreter, program *ast.Program) {
	t.Helper()
	if err := interp.Interpret(program); err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
}

func expectOutput(t *testing.T, out *bytes.Buffer, want string) {
	t.Helper()
	if got := out.String(); got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
}

func expectRuntimeError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got no error", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if message != "" && rtErr.Message != message {
		t.Fatalf("unexpected message %q, want %q", rtErr.Message, message)
	}
}

func expectInternalError(t *testing.T, err error) {
	t.Helper()
	var internal *InternalError
	if !errors.As(err, &internal) {
		t.Fatalf("expected *InternalError, got %v", err)
	}
}

func methods(decls ...*ast.FunctionDeclaration) []*ast.FunctionDeclaration {
	return decls
}
