package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/scanner"
	"github.com/mna/mainer"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "tokenize: %s\n", err)
		return codedError{code: mainer.Failure}
	}

	sink := &diag.Sink{}
	toks := scanner.ScanTokens(src, func(line int, msg string) { sink.ReportCompile(line, msg) })
	for _, tok := range toks {
		fmt.Fprintln(stdio.Stdout, tok.String())
	}
	if sink.HadCompileError() {
		sink.Fprint(stdio.Stderr)
		return codedError{code: exitCompileError}
	}
	return nil
}
