// Package token defines the lexical vocabulary shared by the scanner and the parser.
package token

import "fmt"

type Token struct {
	Kind    Kind    `json:"kind"`
	Lexeme  string  `json:"lexeme"`
	Literal Literal `json:"literal"`
	Line    int     `json:"line"`
}

func New(kind Kind, lexeme string, literal Literal, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

func (t Token) String() string {
	return fmt.Sprintf("TokenType: %s, Lexeme: %s, Literal: %s", t.Kind, t.Lexeme, t.Literal)
}

func (t Token) GoString() string {
	return fmt.Sprintf("{Kind: %s, Lexeme: %q, Literal: %#v, Line: %d}", t.Kind, t.Lexeme, t.Literal, t.Line)
}

var _ fmt.Stringer = Token{}
var _ fmt.GoStringer = Token{}
