// Package parser builds syntax trees from scanned tokens by recursive descent.
package parser

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/lox-frontend/internal/ast"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/token"
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("LOX_FRONTEND_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type Option func(*Parser)

// WithReporter sets the sink for parse errors. Errors are only returned by default.
func WithReporter(r diagnostics.Reporter) Option {
	return func(p *Parser) {
		p.reporter = r
	}
}

func WithDebug(debug bool) Option {
	return func(p *Parser) {
		p.debug = debug
	}
}

type Parser struct {
	tokens   []token.Token
	current  int
	reporter diagnostics.Reporter
	debug    bool
}

// New creates a parser over tokens. The slice is only read. A missing EOF terminator
// is supplied on a private copy.
func New(tokens []token.Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) != 0 {
			line = tokens[len(tokens)-1].Line
		}
		terminated := make([]token.Token, len(tokens), len(tokens)+1)
		copy(terminated, tokens)
		tokens = append(terminated, token.New(token.EOF, "", token.Absent, line))
	}

	p := &Parser{
		tokens:   tokens,
		reporter: diagnostics.Discard,
		debug:    parserDebugLog,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads top-level expressions until EOF. The first parse error stops the whole
// parse; the expressions completed before it are returned together with the error.
func (p *Parser) Parse() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for !p.isAtEnd() {
		expr, err := p.expression()
		if err != nil {
			p.report(err)
			return exprs, err
		}
		if p.debug {
			pp.Println(expr)
			log.Println(ast.Render(expr))
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// Expression parses exactly one expression at the cursor and leaves the following
// tokens unconsumed.
func (p *Parser) Expression() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		p.report(err)
		return nil, err
	}
	return expr, nil
}

// Peek returns the token at the cursor.
func (p *Parser) Peek() token.Token {
	return p.peek()
}

// report hands err to the reporter as a diagnostic. An error that carries no
// diagnostic is pinned to the token at the cursor.
func (p *Parser) report(err error) *diagnostics.Error {
	var e *diagnostics.Error
	if !errors.As(err, &e) {
		e = diagnostics.NewParseError(p.peek(), err.Error())
	}
	p.reporter.Report(e)
	return e
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	if p.debug {
		log.Printf("parse error at %#v: %s", tok, message)
	}
	return diagnostics.NewParseError(tok, message)
}
