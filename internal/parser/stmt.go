package parser

import (
	"github.com/karupanerura/lox-frontend/internal/ast"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/token"
	"github.com/samber/lo"
)

var statementStartKinds = []token.Kind{
	token.Class,
	token.Fun,
	token.Var,
	token.For,
	token.If,
	token.While,
	token.Print,
	token.Return,
}

// ParseProgram reads declarations until EOF. A broken declaration is reported, skipped
// up to the next statement boundary and parsing goes on, so the result holds every
// declaration that parsed cleanly. The returned error is a diagnostics.List.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var (
		stmts []ast.Stmt
		errs  diagnostics.List
	)
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, p.report(err))
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}

	if len(errs) != 0 {
		return stmts, errs
	}
	return stmts, nil
}

// declaration := varDecl | statement
func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

// varDecl := "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name, Initializer: initializer}, nil
}

// statement := printStmt | exprStmt
func (p *Parser) statement() (ast.Stmt, error) {
	if p.match(token.Print) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
			return nil, err
		}
		return &ast.Print{Expr: value}, nil
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.Expression{Expr: expr}, nil
}

// synchronize discards tokens until just past a semicolon or just before a keyword
// that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		if lo.Contains(statementStartKinds, p.peek().Kind) {
			return
		}
		p.advance()
	}
}
