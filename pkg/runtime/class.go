package runtime

import "hcl/interpreter-go/pkg/ast"

// ClassValue is a user-declared class. A class is itself an object whose
// class is Metaclass: class-level methods live there and follow the same
// single-inheritance lookup as instance methods.
type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
	Metaclass  *ClassValue
	Fields     map[string]Value
}

func NewClass(name string, superclass *ClassValue, methods map[string]*FunctionValue, metaclass *ClassValue) *ClassValue {
	if methods == nil {
		methods = make(map[string]*FunctionValue)
	}
	return &ClassValue{
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
		Metaclass:  metaclass,
		Fields:     make(map[string]Value),
	}
}

func (c *ClassValue) Kind() Kind { return KindClass }

// FindMethod searches the class and then its superclass chain.
func (c *ClassValue) FindMethod(name string) *FunctionValue {
	for class := c; class != nil; class = class.Superclass {
		if method, ok := class.Methods[name]; ok {
			return method
		}
	}
	return nil
}

// Initializer returns the nearest `_init`, or nil.
func (c *ClassValue) Initializer() *FunctionValue {
	return c.FindMethod(ast.InitializerName)
}

func (c *ClassValue) Arity() int {
	if init := c.Initializer(); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *ClassValue) Variadic() bool { return false }

// Get reads a class field, then a class-level method bound to the class.
func (c *ClassValue) Get(name string) (Value, error) {
	if val, ok := c.Fields[name]; ok {
		return val, nil
	}
	if c.Metaclass != nil {
		if method := c.Metaclass.FindMethod(name); method != nil {
			return method.Bind(c), nil
		}
	}
	return nil, &UndefinedPropertyError{Name: name}
}

func (c *ClassValue) Set(name string, value Value) {
	c.Fields[name] = value
}

// InstanceValue is an object created by calling a class.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get returns a field, else a method bound to the instance.
func (v *InstanceValue) Get(name string) (Value, error) {
	if val, ok := v.Fields[name]; ok {
		return val, nil
	}
	if method := v.Class.FindMethod(name); method != nil {
		return method.Bind(v), nil
	}
	return nil, &UndefinedPropertyError{Name: name}
}

func (v *InstanceValue) Set(name string, value Value) {
	v.Fields[name] = value
}
