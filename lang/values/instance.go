package values

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Instance is a runtime instance of a Class: a back-pointer to its class
// and its own mutable field table, per spec.md §3. Fields are backed by a
// swiss.Map the same way Environment frames are.
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, Value]
}

var (
	_ Value       = (*Instance)(nil)
	_ HasAttrs    = (*Instance)(nil)
	_ HasSetField = (*Instance)(nil)
)

// NewInstance creates an instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, fields: swiss.NewMap[string, Value](uint32(4))}
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.Name) }
func (i *Instance) Type() string   { return "instance" }

// Get implements spec.md §4.4's property-read rule: a field, if one is set,
// shadows any method of the same name; otherwise the method table (and its
// superclass chain) is searched and the result is bound to this instance.
func (i *Instance) Get(name string) (Value, error) {
	if v, ok := i.fields.Get(name); ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name)
}

// Set assigns a field on the instance, creating it if absent. Lox has no
// notion of a read-only or declared field set: any name may be assigned.
func (i *Instance) Set(name string, v Value) {
	i.fields.Put(name, v)
}
