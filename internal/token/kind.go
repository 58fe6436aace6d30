package token

import (
	"fmt"

	"github.com/samber/lo"
)

type Kind int

const (
	// single-character tokens
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// one or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// literals
	Identifier
	String
	Number

	// keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = map[Kind]string{
	LeftParen:  "left paren",
	RightParen: "right paren",
	LeftBrace:  "left brace",
	RightBrace: "right brace",
	Comma:      "comma",
	Dot:        "dot",
	Minus:      "minus",
	Plus:       "plus",
	Semicolon:  "semicolon",
	Slash:      "slash",
	Star:       "star",

	Bang:         "bang",
	BangEqual:    "bang equal",
	Equal:        "equal",
	EqualEqual:   "equal equal",
	Greater:      "greater",
	GreaterEqual: "greater equal",
	Less:         "less",
	LessEqual:    "less equal",

	Identifier: "identifier",
	String:     "string",
	Number:     "number",

	And:    "and",
	Class:  "class",
	Else:   "else",
	False:  "false",
	Fun:    "fun",
	For:    "for",
	If:     "if",
	Nil:    "nil",
	Or:     "or",
	Print:  "print",
	Return: "return",
	Super:  "super",
	This:   "this",
	True:   "true",
	Var:    "var",
	While:  "while",

	EOF: "end of file",
}

var kindsByName = lo.Invert(kindNames)

var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupIdent returns the keyword kind for ident, or Identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// KindByName is the inverse of Kind.String.
func KindByName(name string) (Kind, bool) {
	kind, ok := kindsByName[name]
	return kind, ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown token kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := KindByName(string(text))
	if !ok {
		return fmt.Errorf("unknown token kind: %q", text)
	}
	*k = kind
	return nil
}
