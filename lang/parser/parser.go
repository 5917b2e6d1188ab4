// Package parser implements the recursive-descent parser described in
// spec.md §4.2: tokens to AST, with syntax-error diagnostics and
// synchronizing error recovery so a single run can report more than one
// syntax error.
package parser

import (
	"errors"

	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/scanner"
	"github.com/mna/loxwalk/lang/token"
)

// errParse is the panic value used to unwind to the nearest declaration
// boundary on a syntax error, where synchronize() resumes parsing. It
// carries no information: the diagnostic was already recorded in the sink
// at the point of the error.
var errParse = errors.New("parse error")

// Parse scans and parses src, reporting every diagnostic to sink, and
// returns the parsed statements (best-effort: statements that failed to
// parse are simply dropped, per spec.md §4.2). Callers must check
// sink.HadCompileError before proceeding to resolution.
func Parse(src []byte, sink *diag.Sink) []ast.Stmt {
	toks := scanner.ScanTokens(src, func(line int, msg string) {
		sink.ReportCompile(line, msg)
	})
	p := &parser{toks: toks, sink: sink}
	return p.parseProgram()
}

type parser struct {
	toks    []token.Token
	current int
	sink    *diag.Sink
}

func (p *parser) parseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ==================== token-stream helpers ====================

func (p *parser) peek() token.Token { return p.toks[p.current] }
func (p *parser) previous() token.Token {
	return p.toks[p.current-1]
}
func (p *parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *parser) check(k token.Kind) bool {
	return !p.isAtEnd() && p.peek().Kind == k
}

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past the expected token kind, or reports a syntax error
// and panics with errParse, unwound at the nearest declaration boundary.
func (p *parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

func (p *parser) errorAt(tok token.Token, message string) error {
	p.sink.ReportCompileAt(tok, message)
	return errParse
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so parsing can resume after a syntax error without cascading diagnostics.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
