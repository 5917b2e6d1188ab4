package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a statement tree as an indented outline, one node
// per line, the way the teacher's ast.Printer walks a parsed chunk for the
// `parse`/`resolve` debug subcommands.
type Printer struct {
	Output io.Writer
}

// Print writes an indented description of every statement in stmts.
func (p *Printer) Print(stmts []Stmt) error {
	pp := &printer{w: p.Output}
	for _, s := range stmts {
		Walk(pp, s)
	}
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if p.err != nil {
		return nil
	}
	if dir == VisitExit {
		p.depth--
		return p
	}
	if _, err := fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), describe(n)); err != nil {
		p.err = err
		return nil
	}
	p.depth++
	return p
}

func describe(n Node) string {
	switch n := n.(type) {
	case *LiteralExpr:
		return fmt.Sprintf("literal %v", n.Value)
	case *UnaryExpr:
		return "unary " + n.Op.Kind.GoString()
	case *BinaryExpr:
		return "binary " + n.Op.Kind.GoString()
	case *LogicalExpr:
		return "logical " + n.Op.Kind.GoString()
	case *GroupingExpr:
		return "group"
	case *VariableExpr:
		return "var " + n.Name.Lexeme
	case *AssignExpr:
		return "assign " + n.Name.Lexeme
	case *CallExpr:
		return fmt.Sprintf("call (%d args)", len(n.Args))
	case *GetExpr:
		return "get ." + n.Name.Lexeme
	case *SetExpr:
		return "set ." + n.Name.Lexeme
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + n.Method.Lexeme
	case *ExpressionStmt:
		return "expr stmt"
	case *PrintStmt:
		return "print"
	case *VarStmt:
		return "var " + n.Name.Lexeme
	case *BlockStmt:
		return fmt.Sprintf("block (%d stmts)", len(n.Stmts))
	case *IfStmt:
		return "if"
	case *WhileStmt:
		return "while"
	case *FunctionStmt:
		return fmt.Sprintf("fun %s (%d params)", n.Name.Lexeme, len(n.Params))
	case *ReturnStmt:
		return "return"
	case *ClassStmt:
		return fmt.Sprintf("class %s (%d methods)", n.Name.Lexeme, len(n.Methods))
	default:
		return fmt.Sprintf("%T", n)
	}
}
