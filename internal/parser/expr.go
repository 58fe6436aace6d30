package parser

import (
	"log"

	"github.com/karupanerura/lox-frontend/internal/ast"
	"github.com/karupanerura/lox-frontend/internal/token"
)

// expression := logic_or
func (p *Parser) expression() (ast.Expr, error) {
	return p.or()
}

// logic_or := logic_and ( "or" logic_and )*
func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, token.Or)
}

// logic_and := equality ( "and" equality )*
func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, token.And)
}

// equality := comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

// comparison := term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

// term := factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.Minus, token.Plus)
}

// factor := unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary folds operands of one precedence level into a left-leaning tree.
func (p *Parser) binary(operand func() (ast.Expr, error), operators ...token.Kind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) logical(operand func() (ast.Expr, error), operator token.Kind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operator) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// unary := ( "!" | "-" ) unary | primary
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Operand: operand}, nil
	}
	return p.primary()
}

// primary := "true" | "false" | "nil" | NUMBER | STRING | IDENTIFIER | "(" expression ")"
func (p *Parser) primary() (ast.Expr, error) {
	if p.debug {
		log.Println("primary: ", p.peek().String())
	}

	switch {
	case p.match(token.False):
		return &ast.Literal{Value: token.BooleanValue(false)}, nil
	case p.match(token.True):
		return &ast.Literal{Value: token.BooleanValue(true)}, nil
	case p.match(token.Nil):
		return &ast.Literal{Value: token.Absent}, nil
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(token.LeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner}, nil
	default:
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
}
