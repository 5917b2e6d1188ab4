// Package diag collects the compile-time and runtime diagnostics produced
// by the Lox pipeline and formats them the way the driver is required to
// print them.
package diag

import (
	"fmt"
	"io"

	"github.com/mna/loxwalk/lang/token"
)

// Sink accumulates compile errors (from the scanner, parser or resolver)
// and runtime errors (from the interpreter) for a single run. A Sink is
// reused across REPL lines: Reset clears both the compile errors and the
// runtime error between lines, so each line's diagnostics are reported on
// their own (the process itself exits after a runtime error outside of
// REPL mode, so there is nothing to reset there).
type Sink struct {
	compileErrors []compileError
	runtimeError  *runtimeError
}

type compileError struct {
	line    int
	where   string // "", " at end", or " at 'lexeme'"
	message string
}

type runtimeError struct {
	line    int
	message string
}

// ReportCompile records a compile-time diagnostic at the given line, with
// no token context (used by the scanner, which has no parser lookahead to
// attribute an "at ..." location to).
func (s *Sink) ReportCompile(line int, message string) {
	s.compileErrors = append(s.compileErrors, compileError{line: line, message: message})
}

// ReportCompileAt records a compile-time diagnostic attributed to tok: at
// end of file if tok.Kind is token.EOF, otherwise at tok's lexeme.
func (s *Sink) ReportCompileAt(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	s.compileErrors = append(s.compileErrors, compileError{line: tok.Line, where: where, message: message})
}

// ReportRuntime records the single runtime error that terminated
// evaluation, attributed to tok's line.
func (s *Sink) ReportRuntime(tok token.Token, message string) {
	s.runtimeError = &runtimeError{line: tok.Line, message: message}
}

// HadCompileError reports whether any compile-time diagnostic was recorded.
func (s *Sink) HadCompileError() bool { return len(s.compileErrors) > 0 }

// HadRuntimeError reports whether a runtime error was recorded.
func (s *Sink) HadRuntimeError() bool { return s.runtimeError != nil }

// Reset clears compile errors and the runtime error, preparing the sink for
// the next REPL line.
func (s *Sink) Reset() {
	s.compileErrors = s.compileErrors[:0]
	s.runtimeError = nil
}

// Fprint writes every recorded diagnostic to w, one per line, in the format
// mandated by spec.md §6: "[LINE] Error<WHERE>: MESSAGE" for compile errors
// and "[LINE] RunTimeError: MESSAGE" for the runtime error.
func (s *Sink) Fprint(w io.Writer) {
	for _, e := range s.compileErrors {
		fmt.Fprintf(w, "[%d] Error%s: %s\n", e.line, e.where, e.message)
	}
	if s.runtimeError != nil {
		fmt.Fprintf(w, "[%d] RunTimeError: %s\n", s.runtimeError.line, s.runtimeError.message)
	}
}
