package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/interpreter"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/mna/mainer"
)

// Repl runs the interactive read-eval-print loop described in spec.md §6:
// one line of source at a time, sharing a single Interpreter (so top-level
// declarations persist across lines) and never exiting the loop because of
// a compile or runtime error on a line.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	sink := &diag.Sink{}
	interp := interpreter.New(sink, stdio.Stdout)

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		sink.Reset()
		stmts := parser.Parse(line, sink)
		if sink.HadCompileError() {
			sink.Fprint(stdio.Stderr)
			continue
		}

		table := resolver.Resolve(stmts, sink)
		if sink.HadCompileError() {
			sink.Fprint(stdio.Stderr)
			continue
		}

		interp.Interpret(stmts, table)
		if sink.HadRuntimeError() {
			sink.Fprint(stdio.Stderr)
		}
	}
}
