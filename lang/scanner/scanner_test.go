package scanner_test

import (
	"testing"

	"github.com/mna/loxwalk/lang/scanner"
	"github.com/mna/loxwalk/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanner.ScanTokens([]byte(`(){},.-+;*/ ! != = == < <= > >=`), nil)
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMICOLON, token.STAR, token.SLASH,
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EOF,
	}, kinds(toks))
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanner.ScanTokens([]byte(`"hello world"`), nil)
	require.Len(t, toks, 2)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	var errs []string
	toks := scanner.ScanTokens([]byte(`"unterminated`), func(line int, msg string) {
		errs = append(errs, msg)
	})
	require.Len(t, errs, 1)
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestScanNumberLiteral(t *testing.T) {
	toks := scanner.ScanTokens([]byte(`123 45.67 89.`), nil)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, 123.0, toks[0].Literal)
	require.Equal(t, token.NUMBER, toks[1].Kind)
	require.Equal(t, 45.67, toks[1].Literal)
	// a trailing '.' not followed by a digit is not part of the number.
	require.Equal(t, token.NUMBER, toks[2].Kind)
	require.Equal(t, 89.0, toks[2].Literal)
	require.Equal(t, token.DOT, toks[3].Kind)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	toks := scanner.ScanTokens([]byte(`foo bar123 _baz and class`), nil)
	require.Equal(t, []token.Kind{
		token.IDENT, token.IDENT, token.IDENT, token.AND, token.CLASS, token.EOF,
	}, kinds(toks))
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	toks := scanner.ScanTokens([]byte("// a comment\n  1 + 1 // trailing\n"), nil)
	require.Equal(t, []token.Kind{
		token.NUMBER, token.PLUS, token.NUMBER, token.EOF,
	}, kinds(toks))
	require.Equal(t, 2, toks[0].Line)
}

func TestScanInvalidCharacterReportsAndContinues(t *testing.T) {
	var errs []string
	toks := scanner.ScanTokens([]byte(`1 @ 2`), func(line int, msg string) {
		errs = append(errs, msg)
	})
	require.Len(t, errs, 1)
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
}
