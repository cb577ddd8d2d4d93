package property

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the native type carried by a Value
type Kind int

const (
	KindText Kind = iota
	KindBoolean
	KindNumber
	KindEnum
)

// String returns the property type name used in the unit data format
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Value is a typed property value. The zero value is an empty text.
type Value struct {
	kind Kind
	text string
	flag bool
	num  float64
}

// Text creates a text value
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Bool creates a boolean value
func Bool(b bool) Value {
	return Value{kind: KindBoolean, flag: b}
}

// Number creates a numeric value
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Enum creates an enumerated value; the allowed options live on the Descriptor
func Enum(s string) Value {
	return Value{kind: KindEnum, text: s}
}

// Kind returns the value's type tag
func (v Value) Kind() Kind {
	return v.kind
}

// Bool reports the boolean content; non-boolean values are true only for "true"
func (v Value) Bool() bool {
	if v.kind == KindBoolean {
		return v.flag
	}
	return v.String() == "true"
}

// Number returns the numeric content; text that does not parse yields 0
func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return 0
	}
	return n
}

// Text returns the textual content of text and enum values
func (v Value) Text() string {
	return v.String()
}

// String returns the external string form ("true", "0.2", ...)
func (v Value) String() string {
	switch v.kind {
	case KindBoolean:
		return strconv.FormatBool(v.flag)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.text
	}
}

// Equal reports whether both values have the same kind and content
func (v Value) Equal(o Value) bool {
	return v == o
}

// Parse converts an external scalar into a Value of the given kind.
// Strings are parsed, native bool and numeric scalars are accepted as is.
// A boolean string is true only when it is exactly "true".
func Parse(kind Kind, raw any) (Value, error) {
	switch kind {
	case KindText:
		return Text(scalarString(raw)), nil
	case KindEnum:
		return Enum(scalarString(raw)), nil
	case KindBoolean:
		switch r := raw.(type) {
		case bool:
			return Bool(r), nil
		case string:
			// only the exact string "true" is true
			return Bool(r == "true"), nil
		}
	case KindNumber:
		switch r := raw.(type) {
		case float64:
			return Number(r), nil
		case float32:
			return Number(float64(r)), nil
		case int:
			return Number(float64(r)), nil
		case int64:
			return Number(float64(r)), nil
		case json.Number:
			n, err := r.Float64()
			if err != nil {
				return Value{}, &InvalidValueError{Kind: kind, Raw: raw}
			}
			return Number(n), nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
			if err != nil {
				return Value{}, &InvalidValueError{Kind: kind, Raw: raw}
			}
			return Number(n), nil
		}
	}
	return Value{}, &InvalidValueError{Kind: kind, Raw: raw}
}

func scalarString(raw any) string {
	switch r := raw.(type) {
	case nil:
		return ""
	case string:
		return r
	case bool:
		return strconv.FormatBool(r)
	case float64:
		return strconv.FormatFloat(r, 'f', -1, 64)
	default:
		return fmt.Sprint(r)
	}
}
