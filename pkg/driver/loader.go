package driver

import (
	"fmt"
	"os"
	"strings"

	"hcl/interpreter-go/pkg/ast"
	"hcl/interpreter-go/pkg/modules"
)

// TreeExtension marks a module stored as a parsed tree next to its source:
// util.hcl is read from util.hcl.json.
const TreeExtension = ".json"

// ParseFunc turns source text into a resolved program.
type ParseFunc func(path string, source []byte) (*ast.Program, error)

// FileLoader reads modules from disk. Without Parse it expects parsed trees
// (see DecodeProgram); with Parse it reads the source file itself.
type FileLoader struct {
	Parse ParseFunc
}

var _ modules.SourceLoader = (*FileLoader)(nil)

// TreePath returns where the parsed tree for a module path is stored.
func TreePath(path string) string {
	if strings.HasSuffix(path, TreeExtension) {
		return path
	}
	return path + TreeExtension
}

func (l *FileLoader) Load(path string) (*ast.Program, error) {
	if l != nil && l.Parse != nil {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		program, err := l.Parse(path, source)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return program, nil
	}
	treePath := TreePath(path)
	data, err := os.ReadFile(treePath)
	if err != nil {
		return nil, err
	}
	program, err := DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", treePath, err)
	}
	return program, nil
}
