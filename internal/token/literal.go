package token

import (
	"fmt"
	"strconv"
)

type LiteralKind uint8

const (
	AbsentLiteral LiteralKind = iota
	NumberLiteral
	BooleanLiteral
	TextLiteral
)

// Literal is a closed union over absent, number, boolean and text values.
// The zero value is the absent literal.
type Literal struct {
	kind    LiteralKind
	number  float64
	boolean bool
	text    string
}

var Absent = Literal{}

func NumberValue(v float64) Literal {
	return Literal{kind: NumberLiteral, number: v}
}

func BooleanValue(v bool) Literal {
	return Literal{kind: BooleanLiteral, boolean: v}
}

func TextValue(v string) Literal {
	return Literal{kind: TextLiteral, text: v}
}

func (l Literal) Kind() LiteralKind {
	return l.kind
}

func (l Literal) IsAbsent() bool {
	return l.kind == AbsentLiteral
}

func (l Literal) Number() (float64, bool) {
	return l.number, l.kind == NumberLiteral
}

func (l Literal) Boolean() (bool, bool) {
	return l.boolean, l.kind == BooleanLiteral
}

func (l Literal) Text() (string, bool) {
	return l.text, l.kind == TextLiteral
}

// Equal compares two literals. Numbers compare by value, so NaN never equals itself.
func (l Literal) Equal(o Literal) bool {
	if l.kind != o.kind {
		return false
	}
	switch l.kind {
	case AbsentLiteral:
		return true
	case NumberLiteral:
		return l.number == o.number
	case BooleanLiteral:
		return l.boolean == o.boolean
	case TextLiteral:
		return l.text == o.text
	default:
		panic(fmt.Sprintf("should not reach here: literal kind=%d", l.kind))
	}
}

// String renders the literal the way it appears in token dumps: nil for absent,
// the shortest round-tripping form for numbers.
func (l Literal) String() string {
	switch l.kind {
	case AbsentLiteral:
		return "nil"
	case NumberLiteral:
		return strconv.FormatFloat(l.number, 'f', -1, 64)
	case BooleanLiteral:
		return strconv.FormatBool(l.boolean)
	case TextLiteral:
		return l.text
	default:
		panic(fmt.Sprintf("should not reach here: literal kind=%d", l.kind))
	}
}

// Any converts the literal into a plain Go value (nil, float64, bool or string).
func (l Literal) Any() any {
	switch l.kind {
	case AbsentLiteral:
		return nil
	case NumberLiteral:
		return l.number
	case BooleanLiteral:
		return l.boolean
	case TextLiteral:
		return l.text
	default:
		panic(fmt.Sprintf("should not reach here: literal kind=%d", l.kind))
	}
}

func (l Literal) GoString() string {
	switch l.kind {
	case AbsentLiteral:
		return "token.Absent"
	case NumberLiteral:
		return fmt.Sprintf("token.NumberValue(%v)", l.number)
	case BooleanLiteral:
		return fmt.Sprintf("token.BooleanValue(%t)", l.boolean)
	default:
		return fmt.Sprintf("token.TextValue(%q)", l.text)
	}
}
