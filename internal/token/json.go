package token

import (
	"fmt"

	"github.com/goccy/go-json"
)

func (l Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Any())
}

func (l *Literal) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	switch vv := v.(type) {
	case nil:
		*l = Absent
	case float64:
		*l = NumberValue(vv)
	case bool:
		*l = BooleanValue(vv)
	case string:
		*l = TextValue(vv)
	default:
		return fmt.Errorf("unsupported literal type %T: %s", v, b)
	}
	return nil
}
