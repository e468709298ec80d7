package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is set
type Kind uint8

const (
	// KindNull is the absent marker, distinct from empty text
	KindNull Kind = iota
	KindInt
	KindText
	KindEnum
	KindBool
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// EnumConst is a single constant of a closed enumeration
type EnumConst struct {
	Type    string // enumeration name, e.g. "Month"
	Name    string // constant name, e.g. "JANUARY"
	Ordinal int    // zero-based declaration position
}

// String returns Type.Name
func (c EnumConst) String() string {
	return c.Type + "." + c.Name
}

// Value is one argument of a test invocation. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	s    string
	b    bool
	enum string
}

// Null returns the absent marker
func Null() Value { return Value{} }

// Int returns an integer value
func Int(n int64) Value { return Value{kind: KindInt, i: n} }

// Text returns a text value; Text("") is empty text, not null
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Enum returns an enum constant value
func Enum(c EnumConst) Value {
	return Value{kind: KindEnum, enum: c.Type, s: c.Name, i: int64(c.Ordinal)}
}

// Kind returns the member kind
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the absent marker
func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders v for reports. Text is quoted so whitespace stays visible.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return strconv.Quote(v.s)
	case KindEnum:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "?"
	}
}

// Tuple is one positional set of values fed to a single invocation
type Tuple []Value

// NewTuple builds a tuple from the given values
func NewTuple(values ...Value) Tuple {
	t := make(Tuple, len(values))
	copy(t, values)
	return t
}

// Arity returns the number of values
func (t Tuple) Arity() int { return len(t) }

// Shape returns the kind at every position
func (t Tuple) Shape() []Kind {
	kinds := make([]Kind, len(t))
	for i, v := range t {
		kinds[i] = v.kind
	}
	return kinds
}

// String renders the tuple as (a, b, c)
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Compatible reports whether two shapes agree position by position.
// Null matches every kind.
func Compatible(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == KindNull || b[i] == KindNull {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Merge returns a shape that keeps the first non-null kind per position.
// The shapes must be compatible.
func Merge(a, b []Kind) []Kind {
	out := make([]Kind, len(a))
	for i := range a {
		out[i] = a[i]
		if out[i] == KindNull {
			out[i] = b[i]
		}
	}
	return out
}
