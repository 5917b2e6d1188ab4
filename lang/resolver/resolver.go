// Package resolver implements the static resolution pass described in
// spec.md §4.3: it walks the parsed AST and, for every variable use,
// precomputes the number of enclosing environment frames the interpreter
// must skip at runtime to find the binding. This is what gives closures
// correct "capture at declaration site" semantics even when an intervening
// block later shadows the captured name (spec.md §8's "capture-then-shadow"
// property).
package resolver

import (
	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/token"
)

// Table is the side mapping from a variable-reference expression node
// (always a *ast.VariableExpr, *ast.AssignExpr, *ast.ThisExpr or
// *ast.SuperExpr) to its scope distance. Absence of an entry for a node
// means "resolve in globals", per spec.md §3.
//
// Keying by the ast.Expr value itself relies on Go pointer identity, the
// idiomatic-Go realization of spec.md §9's "assign each node a unique
// integer ID and key the map by that ID" suggestion — the pointer already
// is a unique, stable identity for the node, so a synthetic ID would be
// redundant.
type Table map[ast.Expr]int

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// scope maps a name declared in one block to whether it has finished
// initializing (false = declared but initializer not yet evaluated, true =
// ready to be read).
type scope map[string]bool

// Resolve walks stmts and returns the resolution table, reporting every
// diagnostic (duplicate local declaration, read-before-define, return
// outside a function, etc., per spec.md §4.3) to sink. The resolver always
// completes, even in the presence of errors; callers must check
// sink.HadCompileError before evaluating.
func Resolve(stmts []ast.Stmt, sink *diag.Sink) Table {
	r := &resolver{
		table:   make(Table),
		sink:    sink,
		fnKind:  fnNone,
		clsKind: classNone,
	}
	r.resolveStmts(stmts)
	return r.table
}

type resolver struct {
	table   Table
	scopes  []scope
	sink    *diag.Sink
	fnKind  functionKind
	clsKind classKind
}

func (r *resolver) pushScope()          { r.scopes = append(r.scopes, make(scope)) }
func (r *resolver) popScope()           { r.scopes = r.scopes[:len(r.scopes)-1] }
func (r *resolver) currentScope() scope { return r.scopes[len(r.scopes)-1] }

func (r *resolver) errorAt(tok token.Token, message string) {
	r.sink.ReportCompileAt(tok, message)
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.pushScope()
		r.resolveStmts(s.Stmts)
		r.popScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.ReturnStmt:
		if r.fnKind == fnNone {
			r.errorAt(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.fnKind == fnInitializer {
				r.errorAt(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if ready, ok := r.currentScope()[e.Name.Lexeme]; ok && !ready {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)

	case *ast.LiteralExpr:
		// nothing to resolve

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.ThisExpr:
		if r.clsKind == classNone {
			r.errorAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.SuperExpr:
		switch r.clsKind {
		case classNone:
			r.errorAt(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case classClass:
			r.errorAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	default:
		panic("resolver: unhandled expression type")
	}
}

// declare introduces name into the innermost scope as not-yet-ready. A
// redeclaration within that same local scope is an error; global
// (top-level, no enclosing scope) redeclaration is allowed, per spec.md
// §4.3.
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.currentScope()
	if _, ok := sc[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.currentScope()[name.Lexeme] = true
}

// resolveLocal searches the scope stack from innermost outward for name; if
// found at depth i from the top, it records the distance (scopes-from-top)
// in the resolution table for node. No entry is recorded if name is not
// found locally, meaning it resolves against globals at evaluation time.
func (r *resolver) resolveLocal(node ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.table[node] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFn := r.fnKind
	r.fnKind = kind
	defer func() { r.fnKind = enclosingFn }()

	r.pushScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.popScope()
}

func (r *resolver) resolveClass(stmt *ast.ClassStmt) {
	enclosingCls := r.clsKind
	r.clsKind = classClass
	defer func() { r.clsKind = enclosingCls }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errorAt(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.clsKind = classSubclass
		r.resolveExpr(stmt.Superclass)

		r.pushScope()
		r.currentScope()["super"] = true
	}

	r.pushScope()
	r.currentScope()["this"] = true

	for _, m := range stmt.Methods {
		kind := fnMethod
		if m.Name.Lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.popScope()
	if stmt.Superclass != nil {
		r.popScope()
	}
}
