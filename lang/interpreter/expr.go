package interpreter

import (
	"github.com/mna/loxwalk/lang/ast"
	"github.com/mna/loxwalk/lang/token"
	"github.com/mna/loxwalk/lang/values"
)

func (in *Interpreter) evalExpr(expr ast.Expr) (values.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.GroupingExpr:
		return in.evalExpr(e.Inner)

	case *ast.UnaryExpr:
		return in.evalUnary(e)

	case *ast.BinaryExpr:
		return in.evalBinary(e)

	case *ast.LogicalExpr:
		return in.evalLogical(e)

	case *ast.VariableExpr:
		return in.lookupVariable(e, e.Name)

	case *ast.AssignExpr:
		v, err := in.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := in.table[e]; ok {
			in.env.AssignAt(dist, e.Name.Lexeme, v)
		} else if err := in.Globals.Assign(e.Name.Lexeme, v); err != nil {
			return nil, newRuntimeError(e.Name, "%s", err.Error())
		}
		return v, nil

	case *ast.CallExpr:
		return in.evalCall(e)

	case *ast.GetExpr:
		obj, err := in.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		getter, ok := obj.(values.HasAttrs)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have properties.")
		}
		v, err := getter.Get(e.Name.Lexeme)
		if err != nil {
			return nil, newRuntimeError(e.Name, "%s", err.Error())
		}
		return v, nil

	case *ast.SetExpr:
		obj, err := in.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		setter, ok := obj.(values.HasSetField)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have fields.")
		}
		v, err := in.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		setter.Set(e.Name.Lexeme, v)
		return v, nil

	case *ast.ThisExpr:
		return in.lookupVariable(e, e.Keyword)

	case *ast.SuperExpr:
		return in.evalSuper(e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func literalValue(v any) values.Value {
	switch v := v.(type) {
	case nil:
		return values.NilValue
	case bool:
		return values.Bool(v)
	case float64:
		return values.Number(v)
	case string:
		return values.String(v)
	default:
		panic("interpreter: unsupported literal type")
	}
}

// lookupVariable resolves name using the scope distance table produced by
// the resolver for node, falling back to globals when node has no entry
// (meaning the resolver determined it is a global reference), per spec.md
// §3.
func (in *Interpreter) lookupVariable(node ast.Expr, name token.Token) (values.Value, error) {
	if dist, ok := in.table[node]; ok {
		return in.env.GetAt(dist, name.Lexeme), nil
	}
	v, err := in.Globals.Get(name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(name, "%s", err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr) (values.Value, error) {
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.MINUS:
		n, ok := right.(values.Number)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return values.Bool(!values.Truthy(right)), nil
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (in *Interpreter) evalLogical(e *ast.LogicalExpr) (values.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	// short-circuit: `or` returns its left operand if truthy, `and` returns
	// it if falsy, without evaluating the right operand at all, per spec.md
	// §4.4.
	if e.Op.Kind == token.OR {
		if values.Truthy(left) {
			return left, nil
		}
	} else {
		if !values.Truthy(left) {
			return left, nil
		}
	}
	return in.evalExpr(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr) (values.Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(values.Number); ok {
			if rn, ok := right.(values.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(values.String); ok {
			if rs, ok := right.(values.String); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		// IEEE-754 division: x/0 yields +Inf/-Inf/NaN, never a Go panic or a
		// Lox runtime error, per spec.md §4.4.
		return ln / rn, nil

	case token.GREATER:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return values.Bool(ln > rn), nil

	case token.GREATER_EQUAL:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return values.Bool(ln >= rn), nil

	case token.LESS:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return values.Bool(ln < rn), nil

	case token.LESS_EQUAL:
		ln, rn, ok := numberOperands(left, right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return values.Bool(ln <= rn), nil

	case token.EQUAL_EQUAL:
		return values.Bool(values.Equal(left, right)), nil

	case token.BANG_EQUAL:
		return values.Bool(!values.Equal(left, right)), nil

	default:
		panic("interpreter: unhandled binary operator")
	}
}

func numberOperands(left, right values.Value) (values.Number, values.Number, bool) {
	ln, ok := left.(values.Number)
	if !ok {
		return 0, 0, false
	}
	rn, ok := right.(values.Number)
	if !ok {
		return 0, 0, false
	}
	return ln, rn, true
}

func (in *Interpreter) evalCall(e *ast.CallExpr) (values.Value, error) {
	callee, err := in.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]values.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(values.Callable)
	if !ok {
		return nil, newRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.ClosingParen, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	v, err := fn.Call(in, args)
	if err != nil {
		if _, ok := err.(*runtimeError); ok {
			return nil, err
		}
		return nil, newRuntimeError(e.ClosingParen, "%s", err.Error())
	}
	return v, nil
}

func (in *Interpreter) evalSuper(e *ast.SuperExpr) (values.Value, error) {
	dist := in.table[e]
	superVal := in.env.GetAt(dist, "super")
	super, ok := superVal.(*values.Class)
	if !ok {
		panic("interpreter: 'super' resolved to a non-class value")
	}

	// `this` always lives one frame closer than `super`, since the class
	// declaration wraps `this` in a scope nested inside the one holding
	// `super` (spec.md §4.3).
	thisVal := in.env.GetAt(dist-1, "this")
	instance, ok := thisVal.(*values.Instance)
	if !ok {
		panic("interpreter: 'this' resolved to a non-instance value")
	}

	method, ok := super.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
