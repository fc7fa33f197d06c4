package interpreter

import (
	"bufio"
	"io"
	"os"
	"sync"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/modules"
	"hcl/interpreter-go/pkg/runtime"
)

// Config wires an interpreter to its host. Zero values select the process
// streams, the default module registry, and no source loader.
type Config struct {
	Stdout   io.Writer
	Stdin    io.Reader
	Registry *modules.Registry
	Loader   modules.SourceLoader
	// Home is the root holding std/<name>.hcl.
	Home string
	// BaseDir resolves bare imports; empty means the working directory.
	BaseDir string
	// Prelude is merged into the global scope before anything runs.
	Prelude map[string]runtime.Value
}

// Interpreter evaluates HCL programs. One coarse lock serialises every
// entry point, so an instance may be shared by goroutines but never runs
// two batches at once.
type Interpreter struct {
	mu        sync.Mutex
	global    *runtime.Environment
	locals    map[ast.Expression]int
	registry  *modules.Registry
	ledger    *modules.Ledger
	importing map[string]bool
	loader    modules.SourceLoader
	home      string
	baseDir   string
	stdout    io.Writer
	stdin     *bufio.Scanner
}

// New returns an interpreter with an empty global environment.
func New() *Interpreter {
	return NewWithConfig(Config{})
}

func NewWithConfig(cfg Config) *Interpreter {
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stdin := cfg.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	registry := cfg.Registry
	if registry == nil {
		registry = modules.Default
	}
	registry.Freeze()
	loader := cfg.Loader
	if loader == nil {
		loader = modules.MissingLoader
	}
	i := &Interpreter{
		global:    runtime.NewEnvironment(nil),
		locals:    make(map[ast.Expression]int),
		registry:  registry,
		ledger:    modules.NewLedger(),
		importing: make(map[string]bool),
		loader:    loader,
		home:      cfg.Home,
		baseDir:   cfg.BaseDir,
		stdout:    stdout,
		stdin:     bufio.NewScanner(stdin),
	}
	if cfg.Prelude != nil {
		i.global.Import(cfg.Prelude)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Imports lists the modules imported so far.
func (i *Interpreter) Imports() []modules.Entry {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.ledger.Entries()
}

// Resolve records a scope distance for expr, as the resolver pass does.
func (i *Interpreter) Resolve(expr ast.Expression, depth int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.locals[expr] = depth
}

// Interpret executes program against the global environment. It stops at
// the first error and returns it; effects of earlier statements remain.
func (i *Interpreter) Interpret(program *ast.Program) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.executeProgram(program)
}

// EvaluateExpression evaluates a single expression in the global scope and
// returns its canonical text.
func (i *Interpreter) EvaluateExpression(expr ast.Expression) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	val, err := i.evaluateExpression(expr, i.global)
	if err != nil {
		return "", escapedSignal(err)
	}
	return Stringify(val), nil
}

// NativeContext exposes the interpreter's streams to host functions.
func (i *Interpreter) NativeContext() *runtime.NativeCallContext {
	return &runtime.NativeCallContext{Stdin: i.stdin, Stdout: i.stdout, Globals: i.global}
}

func (i *Interpreter) executeProgram(program *ast.Program) error {
	if program == nil {
		return nil
	}
	for expr, depth := range program.Locals {
		i.locals[expr] = depth
	}
	for _, stmt := range program.Statements {
		if err := i.evaluateStatement(stmt, i.global); err != nil {
			return escapedSignal(err)
		}
	}
	return nil
}
