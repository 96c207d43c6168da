package categorical

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
	// KindObject classifies a vocabulary with no single scalar kind. It is
	// only produced by Data.Kind, never stored in a Value.
	KindObject
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a small kind-tagged value used for sensor data. The tag selects
// the canonicalization used for hashing and comparison, so arbitrary sensor
// values, including array-valued ones, can serve as vocabulary entries
// without losing their identity.
//
// Two values are equal iff their canonical keys are equal; the kind is part
// of the identity, so Int(1) and Float(1) are distinct. Array content order
// is significant: the model has no unordered container kind, and content
// equality of differently ordered aggregates is deliberately not provided.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
	A    []Value
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v ...Value) Value { return Value{Kind: KindArray, A: v} }

// Key returns a stable canonical representation for use in maps. It is a
// pure function of the value's content: floats canonicalize via their IEEE
// bit pattern and arrays canonicalize recursively.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.S
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// Equal reports whether v and o have equal canonical keys.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindInt:
		return v.I64 == o.I64
	case KindFloat:
		return math.Float64bits(v.F64) == math.Float64bits(o.F64)
	case KindString:
		return v.S == o.S
	case KindBool:
		return v.B == o.B
	case KindArray:
		if len(v.A) != len(o.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(o.A[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsScalar reports whether the value is of a scalar kind.
func (v Value) IsScalar() bool {
	switch v.Kind {
	case KindInt, KindFloat, KindString, KindBool:
		return true
	}
	return false
}

// String returns a human-friendly rendering of the value (diagnostics only).
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "invalid"
	}
}

// Cmp compares two values by natural ordering, returning -1, 0 or 1. Values
// of the same scalar kind order naturally and int/float values cross-compare
// numerically. Any other combination returns an UnorderableError.
func Cmp(a, b Value) (int, error) {
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindInt:
			return cmp.Compare(a.I64, b.I64), nil
		case KindFloat:
			return cmp.Compare(a.F64, b.F64), nil
		case KindString:
			return strings.Compare(a.S, b.S), nil
		case KindBool:
			return boolToInt(a.B) - boolToInt(b.B), nil
		}
	}
	if a.isNumeric() && b.isNumeric() {
		return cmp.Compare(a.asFloat(), b.asFloat()), nil
	}
	return 0, &UnorderableError{A: a.Kind, B: b.Kind}
}

func (v Value) isNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

func (v Value) asFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.I64)
	}
	return v.F64
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
