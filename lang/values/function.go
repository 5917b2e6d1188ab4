package values

import (
	"fmt"

	"github.com/mna/loxwalk/lang/ast"
)

// Interp is the slice of interpreter behavior a Function needs to run its
// own body: execute the statements in a frame the Function has already
// bound its parameters into, and report whichever value a `return`
// produced (or nil if none did). Defining
// this here, rather than importing the interpreter package directly, avoids
// a values<->interpreter import cycle — *interpreter.Interpreter satisfies
// it structurally.
type Interp interface {
	ExecuteFunctionBody(body []ast.Stmt, env *Environment) (Value, error)
}

// Function is a user-defined function or method: its declaration, the
// environment frame in effect where it was declared (its closure), and
// whether it is a class's `init` method, which always returns the bound
// `this` regardless of its own return statements (spec.md §4.4).
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *Environment
	IsInitializer bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (fn *Function) String() string {
	return fmt.Sprintf("<fn %s>", fn.Declaration.Name.Lexeme)
}
func (fn *Function) Type() string { return "function" }
func (fn *Function) Arity() int   { return len(fn.Declaration.Params) }

func (fn *Function) Call(interp any, args []Value) (Value, error) {
	in := interp.(Interp)

	env := NewEnvironment(fn.Closure)
	for i, p := range fn.Declaration.Params {
		env.Define(p.Lexeme, args[i])
	}

	result, err := in.ExecuteFunctionBody(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this"), nil
	}
	if result == nil {
		return NilValue, nil
	}
	return result, nil
}

// Bind returns a copy of fn whose closure is a new frame, nested inside
// fn's own closure, with `this` bound to instance. Called when a method is
// looked up off an instance (spec.md §4.4's method binding).
func (fn *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(fn.Closure)
	env.Define("this", instance)
	return &Function{Declaration: fn.Declaration, Closure: env, IsInitializer: fn.IsInitializer}
}
