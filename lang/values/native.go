package values

import "fmt"

// Native wraps a Go function as a Lox Callable, the mechanism the
// interpreter uses to register the single builtin spec.md allows:
// clock(). NativeName is used only for its String representation.
type Native struct {
	NativeName string
	NativeFn   func(args []Value) (Value, error)
	NativeArgc int
}

var (
	_ Value    = (*Native)(nil)
	_ Callable = (*Native)(nil)
)

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.NativeName) }
func (n *Native) Type() string   { return "function" }
func (n *Native) Arity() int     { return n.NativeArgc }

func (n *Native) Call(_ any, args []Value) (Value, error) {
	return n.NativeFn(args)
}
