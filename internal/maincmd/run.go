package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/interpreter"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/mna/mainer"
)

// exit codes mandated by spec.md §6.
const (
	exitCompileError = 65
	exitRuntimeError = 70
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(stdio.Stderr, "run: a script path is required")
		return codedError{code: mainer.InvalidArgs}
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "run: %s\n", err)
		return codedError{code: mainer.Failure}
	}
	return runSource(stdio, src)
}

func runSource(stdio mainer.Stdio, src []byte) error {
	sink := &diag.Sink{}

	stmts := parser.Parse(src, sink)
	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}

	table := resolver.Resolve(stmts, sink)
	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}

	interp := interpreter.New(sink, stdio.Stdout)
	interp.Interpret(stmts, table)
	if sink.HadRuntimeError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitRuntimeError}
	}
	return nil
}
