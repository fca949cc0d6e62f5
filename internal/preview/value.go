package preview

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	// Null is a missing value.
	Null ValueKind = iota
	// Bool is a boolean.
	Bool
	// Number is a numeric value.
	Number
	// String is a text value.
	String
	// Nested is an array, or an object inside an array, kept whole.
	Nested
)

// String returns the name of the kind.
func (k ValueKind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// Value is a single table cell.
type Value struct {
	kind ValueKind
	b    bool
	num  float64
	// text is the string payload, the literal form of a number or the
	// compact JSON of a nested value.
	text string
}

// NullValue returns a missing value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// StringValue returns a text value.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// NestedValue returns a nested value from its JSON text.
func NestedValue(raw string) Value { return Value{kind: Nested, text: raw} }

// NumberValue returns a numeric value from its literal text. A literal beyond
// the float64 range is kept as an infinite value.
func NumberValue(literal string) (Value, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, err
	}

	return Value{kind: Number, num: f, text: literal}, nil
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is missing.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Float returns the numeric payload.
func (v Value) Float() float64 { return v.num }

// IsIntegral reports whether v is a number without a fractional part or exponent.
func (v Value) IsIntegral() bool {
	if v.kind != Number {
		return false
	}

	_, err := strconv.ParseInt(v.text, 10, 64)

	return err == nil
}

// floating returns v with its text in floating point notation: "inf" for
// infinities, scientific notation outside [1e-4, 1e16) and otherwise a
// decimal with at least one fractional digit.
func (v Value) floating() Value {
	switch {
	case math.IsInf(v.num, 1):
		v.text = "inf"
	case math.IsInf(v.num, -1):
		v.text = "-inf"
	case math.IsNaN(v.num):
		v.text = "nan"
	default:
		v.text = floatText(v.num)
	}

	return v
}

func floatText(f float64) string {
	sci := strconv.FormatFloat(f, 'e', -1, 64)

	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}

	return text
}

// String renders v for display. Null renders as "NaN".
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "NaN"
	case Bool:
		if v.b {
			return "True"
		}

		return "False"
	default:
		return v.text
	}
}

// MarshalJSON encodes v as its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Bool:
		return json.Marshal(v.b)
	case Number:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(v.text)
		}

		if json.Valid([]byte(v.text)) {
			return []byte(v.text), nil
		}

		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case Nested:
		return []byte(v.text), nil
	default:
		return json.Marshal(v.text)
	}
}
