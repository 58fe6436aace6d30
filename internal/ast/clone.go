package ast

import "fmt"

// Clone deep-copies expr. Tokens are values, so the copy shares nothing with expr.
func Clone(expr Expr) Expr {
	switch e := expr.(type) {
	case nil:
		return nil
	case *Literal:
		return &Literal{Value: e.Value}
	case *Variable:
		return &Variable{Name: e.Name}
	case *Grouping:
		return &Grouping{Inner: Clone(e.Inner)}
	case *Unary:
		return &Unary{Operator: e.Operator, Operand: Clone(e.Operand)}
	case *Binary:
		return &Binary{Left: Clone(e.Left), Operator: e.Operator, Right: Clone(e.Right)}
	case *Logical:
		return &Logical{Left: Clone(e.Left), Operator: e.Operator, Right: Clone(e.Right)}
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expr))
	}
}
