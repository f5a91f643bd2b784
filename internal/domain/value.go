package domain

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags a list element.
type ValueKind string

const (
	ValueInt     ValueKind = "int"
	ValueFloat   ValueKind = "float"
	ValueInvalid ValueKind = "invalid"
)

// Value is a single list element as read from its source.
//
// Only ValueInt and ValueFloat take part in arithmetic. Invalid elements keep
// their source type name (str, bool, null, list, map) and raw text so that
// errors can point at them.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Type  string
	Raw   string
}

func IntValue(n int64) Value {
	return Value{Kind: ValueInt, Int: n, Type: "int"}
}

func FloatValue(f float64) Value {
	return Value{Kind: ValueFloat, Float: f, Type: "float"}
}

func InvalidValue(typeName, raw string) Value {
	return Value{Kind: ValueInvalid, Type: typeName, Raw: raw}
}

// IsNumeric reports whether v can be accumulated.
func (v Value) IsNumeric() bool {
	return v.Kind == ValueInt || v.Kind == ValueFloat
}

// TypeName is the name used in messages.
func (v Value) TypeName() string {
	if v.Type != "" {
		return v.Type
	}
	switch v.Kind {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	default:
		return "unknown"
	}
}

// AsFloat widens an int to float64.
func (v Value) AsFloat() float64 {
	if v.Kind == ValueInt {
		return float64(v.Int)
	}
	return v.Float
}

// String renders numbers the way they are printed on the console:
// ints in decimal, floats in shortest form with a trailing ".0" when integral.
func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return formatFloat(v.Float)
	default:
		return v.Raw
	}
}

// Repr is String for numbers and a quoted form for text.
func (v Value) Repr() string {
	if v.Kind == ValueInvalid && v.Type == "str" {
		return "'" + strings.ReplaceAll(v.Raw, "'", `\'`) + "'"
	}
	if v.Kind == ValueInvalid && v.Raw == "" {
		return v.TypeName()
	}
	return v.String()
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	// Decimal notation for exponents in [-4, 16), scientific otherwise.
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp := 0
	if i := strings.LastIndexByte(sci, 'e'); i >= 0 {
		exp, _ = strconv.Atoi(sci[i+1:])
	}
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
