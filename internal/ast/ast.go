// Package ast defines the syntax tree produced by the parser.
//
// Expr and Stmt are closed: only the node types in this package implement them, and
// every consumer switches over the full set.
package ast

import "github.com/karupanerura/lox-frontend/internal/token"

type Expr interface {
	exprNode()
}

type Literal struct {
	Value token.Literal
}

type Variable struct {
	Name token.Token
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Operator token.Token
	Operand  Expr
}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Logical is a short-circuiting `and` / `or`.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Literal) exprNode()  {}
func (*Variable) exprNode() {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}

type Stmt interface {
	stmtNode()
}

type Expression struct {
	Expr Expr
}

type Print struct {
	Expr Expr
}

// Var declares Name. Initializer is nil when the declaration has none.
type Var struct {
	Name        token.Token
	Initializer Expr
}

func (*Expression) stmtNode() {}
func (*Print) stmtNode()      {}
func (*Var) stmtNode()        {}
