package ast

import (
	"fmt"

	"github.com/karupanerura/lox-frontend/internal/token"
)

// Equal reports whether two trees have the same shape, tokens and literal values.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Value.Equal(y.Value)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && equalToken(x.Name, y.Name)
	case *Grouping:
		y, ok := b.(*Grouping)
		return ok && Equal(x.Inner, y.Inner)
	case *Unary:
		y, ok := b.(*Unary)
		return ok && equalToken(x.Operator, y.Operator) && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && equalToken(x.Operator, y.Operator) && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Logical:
		y, ok := b.(*Logical)
		return ok && equalToken(x.Operator, y.Operator) && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", a))
	}
}

func EqualStmt(a, b Stmt) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *Expression:
		y, ok := b.(*Expression)
		return ok && Equal(x.Expr, y.Expr)
	case *Print:
		y, ok := b.(*Print)
		return ok && Equal(x.Expr, y.Expr)
	case *Var:
		y, ok := b.(*Var)
		return ok && equalToken(x.Name, y.Name) && Equal(x.Initializer, y.Initializer)
	default:
		panic(fmt.Sprintf("should not reach here: unknown statement %T", a))
	}
}

func equalToken(a, b token.Token) bool {
	return a.Kind == b.Kind && a.Lexeme == b.Lexeme && a.Line == b.Line && a.Literal.Equal(b.Literal)
}

// StripGroups returns a copy of expr without Grouping nodes. The input is not modified.
func StripGroups(expr Expr) Expr {
	switch e := expr.(type) {
	case nil:
		return nil
	case *Literal:
		return &Literal{Value: e.Value}
	case *Variable:
		return &Variable{Name: e.Name}
	case *Grouping:
		return StripGroups(e.Inner)
	case *Unary:
		return &Unary{Operator: e.Operator, Operand: StripGroups(e.Operand)}
	case *Binary:
		return &Binary{Left: StripGroups(e.Left), Operator: e.Operator, Right: StripGroups(e.Right)}
	case *Logical:
		return &Logical{Left: StripGroups(e.Left), Operator: e.Operator, Right: StripGroups(e.Right)}
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expr))
	}
}
