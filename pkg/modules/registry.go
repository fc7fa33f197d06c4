package modules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"hcl/interpreter-go/pkg/runtime"
)

// Kind tags where a module came from.
type Kind int

const (
	KindSource Kind = iota
	KindNative
	KindLinked
	KindStd
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindNative:
		return "native"
	case KindLinked:
		return "linked"
	case KindStd:
		return "std"
	default:
		return fmt.Sprintf("unknown_module_kind_%d", int(k))
	}
}

// NativeFactory builds a capability table merged into the global scope.
type NativeFactory func() map[string]runtime.Value

// LinkedFactory builds a namespaced module bound under its own name.
type LinkedFactory func() *runtime.ModuleValue

var (
	ErrRegistryFrozen = errors.New("modules: registry is frozen")
	ErrDuplicate      = errors.New("modules: duplicate registration")
)

// Registry maps module names to the three kinds of importable modules. It
// accepts registrations until Freeze and is read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	frozen  bool
	natives map[string]NativeFactory
	linked  map[string]LinkedFactory
	std     map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		natives: make(map[string]NativeFactory),
		linked:  make(map[string]LinkedFactory),
		std:     make(map[string]struct{}),
	}
}

// Default is the process-wide registry used when a host does not supply one.
var Default = NewRegistry()

func (r *Registry) RegisterNative(name string, factory NativeFactory) error {
	if factory == nil {
		return fmt.Errorf("modules: native module %q has no factory", name)
	}
	return r.register(name, func() { r.natives[name] = factory })
}

func (r *Registry) RegisterLinked(name string, factory LinkedFactory) error {
	if factory == nil {
		return fmt.Errorf("modules: linked module %q has no factory", name)
	}
	return r.register(name, func() { r.linked[name] = factory })
}

// RegisterStd declares a standard-library source module available at
// <home>/std/<name>.hcl.
func (r *Registry) RegisterStd(name string) error {
	return r.register(name, func() { r.std[name] = struct{}{} })
}

func (r *Registry) register(name string, add func()) error {
	if name == "" {
		return fmt.Errorf("modules: empty module name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, name)
	}
	if _, ok := r.lookupLocked(name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	add()
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup reports the kind registered under name, honouring the import
// precedence native, then linked, then std.
func (r *Registry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (Kind, bool) {
	if _, ok := r.natives[name]; ok {
		return KindNative, true
	}
	if _, ok := r.linked[name]; ok {
		return KindLinked, true
	}
	if _, ok := r.std[name]; ok {
		return KindStd, true
	}
	return KindSource, false
}

func (r *Registry) Native(name string) (NativeFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.natives[name]
	return f, ok
}

func (r *Registry) Linked(name string) (LinkedFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.linked[name]
	return f, ok
}

// Names lists every registered module in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.natives)+len(r.linked)+len(r.std))
	for name := range r.natives {
		names = append(names, name)
	}
	for name := range r.linked {
		names = append(names, name)
	}
	for name := range r.std {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
