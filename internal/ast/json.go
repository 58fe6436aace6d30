package ast

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/karupanerura/lox-frontend/internal/token"
)

// Encode converts expr into a tree of maps tagged with a "type" key, suitable for
// JSON or YAML output.
func Encode(expr Expr) map[string]any {
	switch e := expr.(type) {
	case nil:
		return nil
	case *Literal:
		return map[string]any{"type": "Literal", "value": e.Value}
	case *Variable:
		return map[string]any{"type": "Variable", "name": e.Name}
	case *Grouping:
		return map[string]any{"type": "Grouping", "inner": Encode(e.Inner)}
	case *Unary:
		return map[string]any{"type": "Unary", "operator": e.Operator, "operand": Encode(e.Operand)}
	case *Binary:
		return encodeInfix("Binary", e.Left, e.Operator, e.Right)
	case *Logical:
		return encodeInfix("Logical", e.Left, e.Operator, e.Right)
	default:
		panic(fmt.Sprintf("should not reach here: unknown expression %T", expr))
	}
}

func encodeInfix(typ string, left Expr, op token.Token, right Expr) map[string]any {
	return map[string]any{
		"type":     typ,
		"left":     Encode(left),
		"operator": op,
		"right":    Encode(right),
	}
}

func EncodeStmt(stmt Stmt) map[string]any {
	switch s := stmt.(type) {
	case nil:
		return nil
	case *Expression:
		return map[string]any{"type": "Expression", "expr": Encode(s.Expr)}
	case *Print:
		return map[string]any{"type": "Print", "expr": Encode(s.Expr)}
	case *Var:
		o := map[string]any{"type": "Var", "name": s.Name}
		if s.Initializer != nil {
			o["initializer"] = Encode(s.Initializer)
		}
		return o
	default:
		panic(fmt.Sprintf("should not reach here: unknown statement %T", stmt))
	}
}

func (e *Literal) MarshalJSON() ([]byte, error)  { return json.Marshal(Encode(e)) }
func (e *Variable) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(e)) }
func (e *Grouping) MarshalJSON() ([]byte, error) { return json.Marshal(Encode(e)) }
func (e *Unary) MarshalJSON() ([]byte, error)    { return json.Marshal(Encode(e)) }
func (e *Binary) MarshalJSON() ([]byte, error)   { return json.Marshal(Encode(e)) }
func (e *Logical) MarshalJSON() ([]byte, error)  { return json.Marshal(Encode(e)) }

func (s *Expression) MarshalJSON() ([]byte, error) { return json.Marshal(EncodeStmt(s)) }
func (s *Print) MarshalJSON() ([]byte, error)      { return json.Marshal(EncodeStmt(s)) }
func (s *Var) MarshalJSON() ([]byte, error)        { return json.Marshal(EncodeStmt(s)) }
