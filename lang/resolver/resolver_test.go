package resolver_test

import (
	"testing"

	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/parser"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/stretchr/testify/require"
)

func resolveSrc(t *testing.T, src string) ([]ast.Stmt, resolver.Table, *diag.Sink) {
	t.Helper()
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(src), sink)
	require.False(t, sink.HadCompileError())
	table := resolver.Resolve(stmts, sink)
	return stmts, table, sink
}

func TestResolveLocalVariableDistance(t *testing.T) {
	stmts, table, _ := resolveSrc(t, `
{
  var a = 1;
  {
    var b = 2;
    print a;
  }
}`)
	block := stmts[0].(*ast.BlockStmt)
	inner := block.Stmts[1].(*ast.BlockStmt)
	printStmt := inner.Stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.VariableExpr)

	dist, ok := table[v]
	require.True(t, ok)
	require.Equal(t, 1, dist, "a is declared one block out from where it's read")
}

func TestResolveGlobalHasNoTableEntry(t *testing.T) {
	stmts, table, _ := resolveSrc(t, `
var a = 1;
print a;`)
	printStmt := stmts[1].(*ast.PrintStmt)
	v := printStmt.Expr.(*ast.VariableExpr)

	_, ok := table[v]
	require.False(t, ok, "a global reference has no table entry")
}

func TestResolveReadOwnInitializerIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`{ var a = a; }`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveDuplicateLocalDeclarationIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`{ var a = 1; var a = 2; }`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveDuplicateGlobalDeclarationIsAllowed(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`var a = 1; var a = 2;`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.False(t, sink.HadCompileError())
}

func TestResolveReturnOutsideFunctionIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`return 1;`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveReturnValueFromInitializerIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`class C { init() { return 1; } }`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`print this;`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveSuperWithNoSuperclassIsAnError(t *testing.T) {
	sink := &diag.Sink{}
	stmts := parser.Parse([]byte(`class C { method() { super.method(); } }`), sink)
	require.False(t, sink.HadCompileError())
	resolver.Resolve(stmts, sink)
	require.True(t, sink.HadCompileError())
}

func TestResolveSuperDistanceInSubclassMethod(t *testing.T) {
	_, table, _ := resolveSrc(t, `
class A { greet() { return "a"; } }
class B < A {
  greet() {
    return super.greet();
  }
}`)
	superDist := -1
	for e, d := range table {
		if _, ok := e.(*ast.SuperExpr); ok {
			superDist = d
		}
	}
	require.NotEqual(t, -1, superDist, "super must resolve to a distance")
}
