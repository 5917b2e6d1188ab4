package interpreter

import (
	"fmt"

	"github.com/mna/loxwalk/lang/token"
	"github.com/mna/loxwalk/lang/values"
)

// returnSignal is the typed result a `return` statement produces: it is
// returned as an ordinary error value from execStmt and propagates upward
// through the normal Go error-return path of block/if/while execution,
// stopping further statements from running without needing panic/recover.
// ExecuteFunctionBody is the only place that catches it.
type returnSignal struct {
	value values.Value
}

func (r *returnSignal) Error() string { return "return" }

// runtimeError is a Lox runtime error (spec.md §4.4's dynamic type checks,
// undefined variables, non-callable callees, etc.), attributed to the token
// that triggered it so the top-level driver can report it with a line
// number.
type runtimeError struct {
	token   token.Token
	message string
}

func (e *runtimeError) Error() string { return e.message }

func newRuntimeError(tok token.Token, format string, args ...any) error {
	return &runtimeError{token: tok, message: fmt.Sprintf(format, args...)}
}
