package values

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Class is a Lox class: a name, an optional superclass, and its methods.
// The declaration order named in spec.md §3 only matters while building
// this table (a later method with the same name replaces an earlier one);
// nothing in the language introspects a class's method set at runtime, so
// the table itself is a swiss.Map keyed by name, the same structure the
// environment frames use.
type Class struct {
	Name       string
	Superclass *Class
	methods    *swiss.Map[string, *Function]
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
)

// Method pairs a declared method name with its Function, preserving the
// declaration order a ClassStmt's Methods slice was built in.
type Method struct {
	Name string
	Fn   *Function
}

// NewClass builds a Class from its ordered method list; a later method with
// a duplicate name overwrites an earlier one, matching how the swiss.Map Put
// call behaves for repeated keys.
func NewClass(name string, superclass *Class, orderedMethods []Method) *Class {
	m := swiss.NewMap[string, *Function](uint32(len(orderedMethods)))
	for _, entry := range orderedMethods {
		m.Put(entry.Name, entry.Fn)
	}
	return &Class{Name: name, Superclass: superclass, methods: m}
}

func (c *Class) String() string { return fmt.Sprintf("<Class %s>", c.Name) }
func (c *Class) Type() string   { return "class" }

// FindMethod looks up name on c, then walks the superclass chain, per
// spec.md §4.4's inheritance lookup rule.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.methods.Get(name); ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init`, or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates c: it builds a fresh Instance and, if c (or an
// ancestor) declares an `init` method, binds and calls it with args before
// returning the instance, per spec.md §4.4's constructor semantics.
func (c *Class) Call(interp any, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
