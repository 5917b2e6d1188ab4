package values

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Environment is one frame of the lexical environment chain described in
// spec.md §3: a table from name to value, plus a link to the enclosing
// frame. Frames are backed by a swiss.Map the same way the teacher's own
// machine.Map backs its dictionaries — Lox has no map value of its own to
// exercise that dependency on, so the environment chain is where it earns
// its keep.
type Environment struct {
	vars      *swiss.Map[string, Value]
	Enclosing *Environment
}

// NewEnvironment creates a new frame enclosed by parent, which is nil for
// the global frame.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: swiss.NewMap[string, Value](uint32(8)), Enclosing: parent}
}

// Define binds name to v in this frame, shadowing any binding of the same
// name in an enclosing frame. Redefinition within the same frame (allowed at
// global scope, and used by the resolver-checked local case too) simply
// overwrites.
func (e *Environment) Define(name string, v Value) {
	e.vars.Put(name, v)
}

// Get looks up name starting in this frame and walking outward through
// Enclosing, returning an error if no frame defines it.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.Enclosing {
		if v, ok := env.vars.Get(name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Undefined variable '%s'.", name)
}

// Assign rebinds name to v in the nearest frame (starting at this one) that
// already defines it, returning an error if no such frame exists — Lox has
// no implicit global creation on assignment.
func (e *Environment) Assign(name string, v Value) error {
	for env := e; env != nil; env = env.Enclosing {
		if _, ok := env.vars.Get(name); ok {
			env.vars.Put(name, v)
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'.", name)
}

// Ancestor walks distance frames outward from this one. Called with the
// scope distance the resolver computed, so it always finds a live frame.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.Enclosing
	}
	return env
}

// GetAt reads name directly from the frame distance steps out, bypassing
// the walk-and-search Get does — the resolver already proved name lives
// exactly there.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.Ancestor(distance).vars.Get(name)
	return v
}

// AssignAt assigns name directly in the frame distance steps out.
func (e *Environment) AssignAt(distance int, name string, v Value) {
	e.Ancestor(distance).vars.Put(name, v)
}
