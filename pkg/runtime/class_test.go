package runtime

import (
	"errors"
	"testing"

	"hcl/interpreter-go/pkg/ast"
)

func method(name string, params ...string) *ast.FunctionDeclaration {
	return ast.Fn(name, params)
}

func TestFindMethodWalksSuperclassChain(t *testing.T) {
	global := NewEnvironment(nil)
	base := NewClass("Base", nil, map[string]*FunctionValue{
		"greet": NewFunction(method("greet"), global, false),
		"name":  NewFunction(method("name"), global, false),
	}, nil)
	derived := NewClass("Derived", base, map[string]*FunctionValue{
		"name": NewFunction(method("name"), global, false),
	}, nil)

	if m := derived.FindMethod("greet"); m == nil || m != base.Methods["greet"] {
		t.Fatalf("expected inherited greet, got %#v", m)
	}
	if m := derived.FindMethod("name"); m != derived.Methods["name"] {
		t.Fatalf("expected override to win")
	}
	if m := derived.FindMethod("missing"); m != nil {
		t.Fatalf("expected nil for missing method, got %#v", m)
	}
}

func TestClassArityFollowsInitializer(t *testing.T) {
	global := NewEnvironment(nil)
	plain := NewClass("Plain", nil, nil, nil)
	if plain.Arity() != 0 {
		t.Fatalf("class without initializer should take no arguments")
	}
	point := NewClass("Point", nil, map[string]*FunctionValue{
		ast.InitializerName: NewFunction(method(ast.InitializerName, "x", "y"), global, true),
	}, nil)
	sub := NewClass("Point3", point, nil, nil)
	if point.Arity() != 2 || sub.Arity() != 2 {
		t.Fatalf("unexpected arity: point=%d sub=%d", point.Arity(), sub.Arity())
	}
}

func TestInstanceFieldsShadowMethods(t *testing.T) {
	global := NewEnvironment(nil)
	class := NewClass("Box", nil, map[string]*FunctionValue{
		"size": NewFunction(method("size"), global, false),
	}, nil)
	inst := NewInstance(class)

	got, err := inst.Get("size")
	if err != nil {
		t.Fatalf("method lookup failed: %v", err)
	}
	bound, ok := got.(*FunctionValue)
	if !ok {
		t.Fatalf("expected bound method, got %#v", got)
	}
	self, err := bound.Closure.GetAt(0, ast.SelfName)
	if err != nil || self != inst {
		t.Fatalf("bound method should hold the instance as self: %v %#v", err, self)
	}
	if bound.Closure.Parent() != global {
		t.Fatalf("binding frame should sit directly under the method closure")
	}

	inst.Set("size", NumberValue{Val: 3})
	got, _ = inst.Get("size")
	if nv, ok := got.(NumberValue); !ok || nv.Val != 3 {
		t.Fatalf("field should shadow method, got %#v", got)
	}

	_, err = inst.Get("missing")
	if !errors.Is(err, ErrUndefinedProperty) || err.Error() != "Undefined property 'missing'." {
		t.Fatalf("unexpected missing property error: %v", err)
	}
}

func TestClassGetReadsMetaclassMethods(t *testing.T) {
	global := NewEnvironment(nil)
	baseMeta := NewClass("Base metaclass", nil, map[string]*FunctionValue{
		"create": NewFunction(method("create"), global, false),
	}, nil)
	base := NewClass("Base", nil, nil, baseMeta)
	derivedMeta := NewClass("Derived metaclass", baseMeta, nil, nil)
	derived := NewClass("Derived", base, nil, derivedMeta)

	got, err := derived.Get("create")
	if err != nil {
		t.Fatalf("class method lookup failed: %v", err)
	}
	self, _ := got.(*FunctionValue).Closure.GetAt(0, ast.SelfName)
	if self != derived {
		t.Fatalf("class method should be bound to the receiving class")
	}

	derived.Set("count", NumberValue{Val: 1})
	if v, err := derived.Get("count"); err != nil || v.(NumberValue).Val != 1 {
		t.Fatalf("class field lookup failed: %v %#v", err, v)
	}
	if _, err := base.Get("count"); !errors.Is(err, ErrUndefinedProperty) {
		t.Fatalf("class fields are not inherited, got %v", err)
	}
}

func TestModuleGet(t *testing.T) {
	mod := NewModule("math", map[string]Value{"pi": NumberValue{Val: 3}})
	if v, err := mod.Get("pi"); err != nil || v.(NumberValue).Val != 3 {
		t.Fatalf("module member lookup failed: %v %#v", err, v)
	}
	if _, err := mod.Get("tau"); !errors.Is(err, ErrUndefinedProperty) {
		t.Fatalf("expected undefined property, got %v", err)
	}
}

func TestBindKeepsInitializerFlag(t *testing.T) {
	global := NewEnvironment(nil)
	init := NewFunction(method(ast.InitializerName), global, true)
	bound := init.Bind(NewInstance(NewClass("C", nil, nil, nil)))
	if !bound.IsInitializer || bound.Declaration != init.Declaration {
		t.Fatalf("bind should keep declaration and initializer flag")
	}
	if init.Closure != global {
		t.Fatalf("bind must not modify the original function")
	}
}
