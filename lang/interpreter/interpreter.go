// Package interpreter tree-walks a resolved Lox AST and evaluates it, per
// spec.md §4.4. It is the only package that imports both lang/ast and
// lang/values and ties them together with the scope-distance table the
// resolver produced.
package interpreter

import (
	"fmt"
	"io"
	"time"

	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/diag"
	"github.com/mna/loxwalk/lang/resolver"
	"github.com/mna/loxwalk/lang/token"
	"github.com/mna/loxwalk/lang/values"
)

// Interpreter evaluates a resolved program. One Interpreter is reused
// across REPL lines so that top-level variable and function declarations
// persist from one line to the next, per spec.md §6.
type Interpreter struct {
	Globals *values.Environment

	env    *values.Environment
	table  resolver.Table
	sink   *diag.Sink
	stdout io.Writer
}

var _ values.Interp = (*Interpreter)(nil)

// New creates an Interpreter whose `print` output goes to stdout and whose
// diagnostics go to sink. Globals is pre-populated with the clock() builtin
// spec.md §3 names as the language's only stdlib surface.
func New(sink *diag.Sink, stdout io.Writer) *Interpreter {
	globals := values.NewEnvironment(nil)
	globals.Define("clock", &values.Native{
		NativeName: "clock",
		NativeArgc: 0,
		NativeFn: func(args []values.Value) (values.Value, error) {
			return values.Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
	return &Interpreter{Globals: globals, env: globals, sink: sink, stdout: stdout}
}

// Interpret executes stmts using table, the scope-distance side table the
// resolver produced for this same AST. The entries of table are added to
// those of earlier calls, so functions declared on a previous REPL line
// still find their local bindings. It stops at the first runtime error
// (spec.md §6's "abort the run" rule) and reports it to the sink; callers
// check sink.HadRuntimeError afterward.
func (in *Interpreter) Interpret(stmts []ast.Stmt, table resolver.Table) {
	if in.table == nil {
		in.table = make(resolver.Table, len(table))
	}
	for node, dist := range table {
		in.table[node] = dist
	}
	for _, stmt := range stmts {
		if err := in.execStmt(stmt); err != nil {
			if rerr, ok := err.(*runtimeError); ok {
				in.sink.ReportRuntime(rerr.token, rerr.message)
			}
			return
		}
	}
}

// ExecuteFunctionBody implements values.Interp: it runs body in env until
// a `return` statement's signal is caught or the body runs off its end,
// and reports the resulting value. A genuine error (not a return signal)
// propagates to the caller.
func (in *Interpreter) ExecuteFunctionBody(body []ast.Stmt, env *values.Environment) (values.Value, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range body {
		if err := in.execStmt(stmt); err != nil {
			if ret, ok := err.(*returnSignal); ok {
				return ret.value, nil
			}
			return nil, err
		}
	}
	return values.NilValue, nil
}

// executeBlock runs stmts in a freshly nested environment, the shared
// machinery behind block statements, if/while bodies and for-desugared
// bodies (spec.md §4.2's for-loop desugaring already turned those into
// BlockStmt/WhileStmt nodes, so there is only one block-execution path).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *values.Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evalExpr(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var v values.Value = values.NilValue
		if s.Init != nil {
			var err error
			v, err = in.evalExpr(s.Init)
			if err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, values.NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if values.Truthy(cond) {
			return in.execStmt(s.Then)
		} else if s.Else != nil {
			return in.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evalExpr(s.Cond)
			if err != nil {
				return err
			}
			if !values.Truthy(cond) {
				return nil
			}
			if err := in.execStmt(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &values.Function{Declaration: s, Closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var v values.Value = values.NilValue
		if s.Value != nil {
			var err error
			v, err = in.evalExpr(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.ClassStmt:
		return in.execClassStmt(s)

	default:
		panic("interpreter: unhandled statement type")
	}
}

func (in *Interpreter) execClassStmt(stmt *ast.ClassStmt) error {
	var superclass *values.Class
	if stmt.Superclass != nil {
		v, err := in.evalExpr(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*values.Class)
		if !ok {
			return newRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(stmt.Name.Lexeme, values.NilValue)

	methodEnv := in.env
	if superclass != nil {
		methodEnv = values.NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make([]values.Method, 0, len(stmt.Methods))
	for _, m := range stmt.Methods {
		fn := &values.Function{
			Declaration:   m,
			Closure:       methodEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
		methods = append(methods, values.Method{Name: m.Name.Lexeme, Fn: fn})
	}

	class := values.NewClass(stmt.Name.Lexeme, superclass, methods)
	// cannot fail: stmt.Name was just defined in this exact environment above.
	_ = in.env.Assign(stmt.Name.Lexeme, class)
	return nil
}
