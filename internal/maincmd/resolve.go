package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/mna/mainer"
)

// Resolve runs the scanner, parser and resolver and prints the AST
// followed by a summary of the scope-distance table the resolver
// produced: the number of locally resolved references and the number of
// variable reads left to globals. The distance of each individual node is
// not printed.
func (c *Cmd) Resolve(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "resolve: %s\n", err)
		return codedError{code: mainer.Failure}
	}

	sink := &diag.Sink{}
	stmts := parser.Parse(src, sink)
	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}

	table := resolver.Resolve(stmts, sink)

	printer := ast.Printer{Output: stdio.Stdout}
	if err := printer.Print(stmts); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return codedError{code: mainer.Failure}
	}

	local, global := len(table), 0
	var counter ast.VisitorFunc
	counter = func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir != ast.VisitEnter {
			return counter
		}
		if e, ok := n.(*ast.VariableExpr); ok {
			if _, resolved := table[e]; !resolved {
				global++
			}
		}
		return counter
	}
	for _, s := range stmts {
		ast.Walk(counter, s)
	}
	fmt.Fprintf(stdio.Stdout, "resolved: %d local reference(s), %d global variable reference(s)\n", local, global)

	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}
	return nil
}
