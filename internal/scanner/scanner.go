// Package scanner turns lox source text into a token sequence.
package scanner

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/token"
)

var scannerDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("LOX_FRONTEND_DEBUG")); v && err == nil {
		scannerDebugLog = true
	}
}

type Option func(*Scanner)

// WithReporter sets the sink for scan errors. They are written to stderr by default.
func WithReporter(r diagnostics.Reporter) Option {
	return func(s *Scanner) {
		s.reporter = r
	}
}

func WithDebug(debug bool) Option {
	return func(s *Scanner) {
		s.debug = debug
	}
}

type Scanner struct {
	source   string
	tokens   []token.Token
	start    int
	current  int
	line     int
	errors   diagnostics.List
	reporter diagnostics.Reporter
	debug    bool
}

func New(source string, opts ...Option) *Scanner {
	s := &Scanner{
		source:   source,
		line:     1,
		reporter: diagnostics.NewWriterReporter(os.Stderr),
		debug:    scannerDebugLog,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanTokens scans the whole source. The result always ends with exactly one EOF token,
// even when errors were reported.
func (s *Scanner) ScanTokens() []token.Token {
	s.tokens, s.errors, s.start, s.current, s.line = nil, nil, 0, 0, 1
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.New(token.EOF, "", token.Absent, s.line))
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(s.choose('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.choose('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.choose('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.choose('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			// comment runs until the end of line
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\r', '\t':
		// just skip white spaces
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.unexpectedCharacter()
		}
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		switch s.peek() {
		case '\n':
			s.line++
		case '\\':
			// keep the escaped character inside the literal
			if s.peekNext() == '\n' {
				s.line++
			}
			if s.peekNext() != 0 {
				s.advance()
			}
		}
		s.advance()
	}

	if s.isAtEnd() {
		s.error("Unterminated string.")
		return
	}

	// the closing quote
	s.advance()

	lexeme := s.source[s.start:s.current]
	value := stringLiteralEscapeReplacer.Replace(lexeme[1 : len(lexeme)-1])
	s.emit(token.New(token.String, lexeme, token.TextValue(value), s.line))
}

var stringLiteralEscapeReplacer = strings.NewReplacer(
	"\\n", "\n",
	"\\\"", `"`,
	"\\r", "\r",
	"\\t", "\t",
	"\\\\", "\\",
)

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// a trailing dot belongs to the next token
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	lexeme := s.source[s.start:s.current]
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.error(fmt.Sprintf("Invalid number %s.", lexeme))
		return
	}
	s.emit(token.New(token.Number, lexeme, token.NumberValue(v), s.line))
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	s.addToken(token.LookupIdent(s.source[s.start:s.current]))
}

func (s *Scanner) unexpectedCharacter() {
	r, size := utf8.DecodeRuneInString(s.source[s.start:])
	if r == utf8.RuneError && size <= 1 {
		s.error(fmt.Sprintf("Unexpected character %q.", s.source[s.start]))
		return
	}

	// skip the rest of a multi-byte character so it is reported once
	s.current = s.start + size
	s.error(fmt.Sprintf("Unexpected character %q.", r))
}

func (s *Scanner) addToken(kind token.Kind) {
	s.emit(token.New(kind, s.source[s.start:s.current], token.Absent, s.line))
}

func (s *Scanner) emit(tok token.Token) {
	if s.debug {
		log.Println("token: ", tok.String())
	}
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) error(message string) {
	if s.debug {
		log.Printf("scan error at line %d: %s", s.line, message)
	}
	err := diagnostics.NewScanError(s.line, message)
	s.errors = append(s.errors, err)
	s.reporter.Report(err)
}

// Errors returns what the last ScanTokens reported, in source order.
func (s *Scanner) Errors() diagnostics.List {
	return append(diagnostics.List(nil), s.errors...)
}

// Err returns nil when the last ScanTokens reported nothing.
func (s *Scanner) Err() error {
	if len(s.errors) == 0 {
		return nil
	}
	return s.Errors()
}

func (s *Scanner) choose(expected byte, matched, otherwise token.Kind) token.Kind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
