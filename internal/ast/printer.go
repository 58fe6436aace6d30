package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karupanerura/lox-frontend/internal/token"
)

// Render prints expr as an s-expression such as `(- (group (+ 1 2)) x)`.
func Render(expr Expr) string {
	var b strings.Builder
	render(&b, expr)
	return b.String()
}

func render(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		b.WriteString("nil")
	case *Literal:
		renderLiteral(b, e.Value)
	case *Variable:
		b.WriteString(e.Name.Lexeme)
	case *Grouping:
		parenthesize(b, "group", e.Inner)
	case *Unary:
		parenthesize(b, e.Operator.Lexeme, e.Operand)
	case *Binary:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expr))
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteByte(' ')
		render(b, expr)
	}
	b.WriteByte(')')
}

func renderLiteral(b *strings.Builder, v token.Literal) {
	if s, ok := v.Text(); ok {
		b.WriteString(strconv.Quote(s))
		return
	}
	b.WriteString(v.String())
}

// RenderStmt prints stmt in the same s-expression style as Render.
func RenderStmt(stmt Stmt) string {
	var b strings.Builder
	switch s := stmt.(type) {
	case *Expression:
		parenthesize(&b, ";", s.Expr)
	case *Print:
		parenthesize(&b, "print", s.Expr)
	case *Var:
		b.WriteString("(var ")
		b.WriteString(s.Name.Lexeme)
		if s.Initializer != nil {
			b.WriteString(" = ")
			render(&b, s.Initializer)
		}
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("should not reach here: unknown statement %T", stmt))
	}
	return b.String()
}

// Format prints expr back as lox source with every compound expression wrapped in
// parentheses, e.g. `((1 - 2) - 3)`. Scanning and parsing the result yields the same
// tree up to Grouping nodes.
func Format(expr Expr) string {
	var b strings.Builder
	format(&b, expr)
	return b.String()
}

func format(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		formatLiteral(b, e.Value)
	case *Variable:
		b.WriteString(e.Name.Lexeme)
	case *Grouping:
		switch e.Inner.(type) {
		case *Grouping, *Unary, *Binary, *Logical:
			// already parenthesized
			format(b, e.Inner)
		default:
			b.WriteByte('(')
			format(b, e.Inner)
			b.WriteByte(')')
		}
	case *Unary:
		b.WriteByte('(')
		b.WriteString(e.Operator.Lexeme)
		format(b, e.Operand)
		b.WriteByte(')')
	case *Binary:
		formatInfix(b, e.Left, e.Operator, e.Right)
	case *Logical:
		formatInfix(b, e.Left, e.Operator, e.Right)
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expr))
	}
}

func formatInfix(b *strings.Builder, left Expr, op token.Token, right Expr) {
	b.WriteByte('(')
	format(b, left)
	b.WriteByte(' ')
	b.WriteString(op.Lexeme)
	b.WriteByte(' ')
	format(b, right)
	b.WriteByte(')')
}

var stringLiteralEscaper = strings.NewReplacer(
	"\\", "\\\\",
	`"`, "\\\"",
	"\n", "\\n",
	"\r", "\\r",
	"\t", "\\t",
)

func formatLiteral(b *strings.Builder, v token.Literal) {
	switch v.Kind() {
	case token.AbsentLiteral:
		b.WriteString("nil")
	case token.TextLiteral:
		s, _ := v.Text()
		b.WriteByte('"')
		b.WriteString(stringLiteralEscaper.Replace(s))
		b.WriteByte('"')
	case token.NumberLiteral, token.BooleanLiteral:
		b.WriteString(v.String())
	default:
		panic(fmt.Sprintf("should not reach here: literal kind=%d", v.Kind()))
	}
}

// FormatStmt prints stmt back as lox source using Format for its expressions.
func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *Expression:
		return Format(s.Expr) + ";"
	case *Print:
		return "print " + Format(s.Expr) + ";"
	case *Var:
		if s.Initializer == nil {
			return "var " + s.Name.Lexeme + ";"
		}
		return "var " + s.Name.Lexeme + " = " + Format(s.Initializer) + ";"
	default:
		panic(fmt.Sprintf("should not reach here: unknown statement %T", stmt))
	}
}
