package modules

import (
	"fmt"
	"path/filepath"

	"hcl/interpreter-go/pkg/ast"
)

// SourceExtension is the file extension of HCL source modules.
const SourceExtension = ".hcl"

// SourceLoader turns a module path into a parsed, resolved program. Hosts
// plug their scanner, parser and resolver in here.
type SourceLoader interface {
	Load(path string) (*ast.Program, error)
}

// LoaderFunc adapts a function to SourceLoader.
type LoaderFunc func(path string) (*ast.Program, error)

func (f LoaderFunc) Load(path string) (*ast.Program, error) {
	return f(path)
}

// SourcePath is the path of a bare (non-std) import relative to base.
func SourcePath(base, name string) string {
	file := name + SourceExtension
	if base == "" {
		return file
	}
	return filepath.Join(base, file)
}

// StdPath is the path of a standard-library module: <home>/std/<name>.hcl.
func StdPath(home, name string) string {
	return filepath.Join(home, "std", name+SourceExtension)
}

// MissingLoader is used when no loader was configured; every load fails.
var MissingLoader SourceLoader = LoaderFunc(func(path string) (*ast.Program, error) {
	return nil, fmt.Errorf("no source loader configured for %s", path)
})
