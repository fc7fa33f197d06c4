package interpreter

import (
	"fmt"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/modules"
	"hcl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateImportStatement(stmt *ast.ImportStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Module, env)
	if err != nil {
		return err
	}
	str, ok := val.(runtime.StringValue)
	if !ok {
		return newRuntimeError(TypeError, stmt.Keyword, "Expected a string.")
	}
	name := str.Val

	if _, ok := i.ledger.Imported(name, false); ok {
		return newRuntimeError(ImportError, stmt.Keyword, "Module %s is already imported.", name)
	}
	if _, ok := i.ledger.Imported(name, true); ok {
		return newRuntimeError(ImportError, stmt.Keyword, "Standard Module %s is already imported.", name)
	}

	if !stmt.IsStd {
		if err := i.importSource(stmt.Keyword, name, modules.SourcePath(i.baseDir, name)); err != nil {
			return err
		}
		i.ledger.Record(name, modules.KindSource)
		return nil
	}

	kind, ok := i.registry.Lookup(name)
	if !ok {
		return newRuntimeError(ImportError, stmt.Keyword, "Can't import Standard Module %s.", name)
	}
	switch kind {
	case modules.KindNative:
		factory, _ := i.registry.Native(name)
		i.global.Import(factory())
	case modules.KindLinked:
		factory, _ := i.registry.Linked(name)
		mod := factory()
		if mod == nil {
			return newRuntimeError(ImportError, stmt.Keyword, "Standard Module %s did not initialise.", name)
		}
		i.global.Define(name, mod)
	case modules.KindStd:
		if i.home == "" {
			return newRuntimeError(ImportError, stmt.Keyword, "Can't import Standard Module %s: no home directory configured.", name)
		}
		if err := i.importSource(stmt.Keyword, name, modules.StdPath(i.home, name)); err != nil {
			return err
		}
	default:
		return &InternalError{Message: fmt.Sprintf("module %s has unexpected kind %s", name, kind)}
	}
	i.ledger.Record(name, kind)
	return nil
}

// importSource loads a source module and runs it in the global scope.
func (i *Interpreter) importSource(keyword ast.Token, name, path string) error {
	if i.importing[path] {
		return newRuntimeError(ImportError, keyword, "Circular import of module %s.", name)
	}
	program, err := i.loader.Load(path)
	if err != nil {
		return &RuntimeError{
			Kind:    ImportError,
			Token:   keyword,
			Message: fmt.Sprintf("Can't load module %s: %v", name, err),
			Cause:   err,
		}
	}
	i.importing[path] = true
	defer delete(i.importing, path)
	return i.executeProgram(program)
}
