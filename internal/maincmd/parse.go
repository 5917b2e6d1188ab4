package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/mainer"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "parse: %s\n", err)
		return codedError{code: mainer.Failure}
	}

	sink := &diag.Sink{}
	stmts := parser.Parse(src, sink)

	printer := ast.Printer{Output: stdio.Stdout}
	if err := printer.Print(stmts); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return codedError{code: mainer.Failure}
	}
	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}
	return nil
}
