// Package diagnostics carries scan and parse errors from the front end to whoever
// drives it.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/karupanerura/lox-frontend/internal/token"
	"github.com/samber/lo"
)

type Tag string

const (
	ScanErrorTag  Tag = "ScanError"
	ParseErrorTag Tag = "ParseError"
)

type Error struct {
	Tag     Tag            `json:"tag"`
	Line    int            `json:"line"`
	Where   string         `json:"where,omitempty"`
	Message string         `json:"message"`
	Extra   map[string]any `json:"extra,omitempty"`
}

func NewScanError(line int, message string) *Error {
	return &Error{Tag: ScanErrorTag, Line: line, Message: message}
}

// NewParseError anchors message at tok.
func NewParseError(tok token.Token, message string) *Error {
	where := " at end"
	if tok.Kind != token.EOF {
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	return &Error{
		Tag:     ParseErrorTag,
		Line:    tok.Line,
		Where:   where,
		Message: message,
		Extra: map[string]any{
			"token": tok.Kind.String(),
		},
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[line %d] Error%s: %s", e.Line, e.Where, e.Message)
	return b.String()
}

func (e *Error) Exception() any {
	o := map[string]any{
		"tags":    []any{e.Tag},
		"line":    e.Line,
		"message": e.Message,
	}
	if len(e.Extra) != 0 {
		o = lo.Assign(o, e.Extra)
	}
	return o
}

// List is a non-empty sequence of errors reported during one run.
type List []*Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		msgs := lo.Map(l, func(e *Error, _ int) string {
			return e.Error()
		})
		return strings.Join(msgs, "\n")
	}
}

// Unwrap lets errors.As find the first error in the list.
func (l List) Unwrap() error {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}
