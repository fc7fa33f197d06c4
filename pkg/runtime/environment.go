package runtime

import (
	"sort"
)

// Environment provides lexical scoping for HCL runtime values. One frame is
// created per block, per call activation, and per class body that binds
// `super`.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or overwrites a binding in the current frame.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Import merges a capability table into the current frame.
func (e *Environment) Import(table map[string]Value) {
	for name, value := range table {
		e.values[name] = value
	}
}

// Has reports whether the current frame binds name.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Assign updates an existing binding in the first frame where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Ancestor walks exactly distance parent links.
func (e *Environment) Ancestor(distance int) (*Environment, error) {
	env := e
	for hop := 0; hop < distance; hop++ {
		if env.parent == nil {
			return nil, &ScopeDepthError{Distance: distance, Reached: hop}
		}
		env = env.parent
	}
	return env, nil
}

// GetAt reads name from the frame distance hops up, without searching further.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	env, err := e.Ancestor(distance)
	if err != nil {
		return nil, err
	}
	if v, ok := env.values[name]; ok {
		return v, nil
	}
	return nil, &UndefinedVariableError{Name: name}
}

// AssignAt mutates name in the frame distance hops up.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	env, err := e.Ancestor(distance)
	if err != nil {
		return err
	}
	if _, ok := env.values[name]; !ok {
		return &UndefinedVariableError{Name: name}
	}
	env.values[name] = value
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
