package metalyzer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind discriminates the cell value union.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindString
)

// Value is one coerced spreadsheet cell: null, integer, float, or the
// original text when no numeric reading exists.
type Value struct {
	Kind     ValueKind
	IntVal   int64
	FloatVal float64
	StrVal   string
}

// Coerce maps raw cell text onto a Value. Empty cells and the vendor
// "no data" dash become null. Internal spaces are removed and decimal
// commas converted before the numeric parses; the integer parse wins when
// both would succeed.
func Coerce(raw string) Value {
	if raw == "" || raw == "-" {
		return Value{Kind: KindNull}
	}
	clean := strings.ReplaceAll(strings.ReplaceAll(raw, ",", "."), " ", "")
	if i, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return Value{Kind: KindInt, IntVal: i}
	}
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return Value{Kind: KindFloat, FloatVal: f}
	}
	return Value{Kind: KindString, StrVal: raw}
}

// IsNull reports whether the cell carried no data.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Float64 returns the numeric reading of the value. Null and string kinds
// have none.
func (v Value) Float64() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.IntVal), true
	case KindFloat:
		return v.FloatVal, true
	default:
		return 0, false
	}
}

// MarshalJSON renders the union as the matching JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return json.Marshal(v.IntVal)
	case KindFloat:
		return json.Marshal(v.FloatVal)
	case KindString:
		return json.Marshal(v.StrVal)
	default:
		return []byte("null"), nil
	}
}
