package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ConversionError reports a value that cannot be passed as the requested
// parameter type
type ConversionError struct {
	Value  Value
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %s (%s) to %s: %v", e.Value, e.Value.kind, e.Target, e.Err)
	}
	return fmt.Sprintf("cannot convert %s (%s) to %s", e.Value, e.Value.kind, e.Target)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// As converts v to the parameter type T. Text converts implicitly to
// integers and booleans; null converts only to *string and Value.
func As[T any](v Value) (T, error) {
	var zero T
	var out any

	switch any(zero).(type) {
	case Value:
		out = v
	case *string:
		switch v.kind {
		case KindNull:
			out = (*string)(nil)
		case KindText, KindEnum:
			s := v.s
			out = &s
		default:
			return zero, &ConversionError{Value: v, Target: "*string"}
		}
	case string:
		switch v.kind {
		case KindText, KindEnum:
			out = v.s
		case KindInt, KindBool:
			out = v.String()
		default:
			return zero, &ConversionError{Value: v, Target: "string"}
		}
	case int64:
		n, err := toInt(v, 64)
		if err != nil {
			return zero, err
		}
		out = n
	case int:
		n, err := toInt(v, strconv.IntSize)
		if err != nil {
			return zero, err
		}
		out = int(n)
	case bool:
		switch v.kind {
		case KindBool:
			out = v.b
		case KindText:
			b, err := strconv.ParseBool(strings.TrimSpace(v.s))
			if err != nil {
				return zero, &ConversionError{Value: v, Target: "bool", Err: err}
			}
			out = b
		default:
			return zero, &ConversionError{Value: v, Target: "bool"}
		}
	case EnumConst:
		if v.kind != KindEnum {
			return zero, &ConversionError{Value: v, Target: "enum"}
		}
		out = EnumConst{Type: v.enum, Name: v.s, Ordinal: int(v.i)}
	default:
		return zero, &ConversionError{Value: v, Target: fmt.Sprintf("%T", zero)}
	}

	return out.(T), nil
}

func toInt(v Value, bits int) (int64, error) {
	switch v.kind {
	case KindInt:
		if bits < 64 && (v.i > 1<<(bits-1)-1 || v.i < -(1<<(bits-1))) {
			return 0, &ConversionError{Value: v, Target: "int", Err: strconv.ErrRange}
		}
		return v.i, nil
	case KindText:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, bits)
		if err != nil {
			return 0, &ConversionError{Value: v, Target: "int", Err: err}
		}
		return n, nil
	default:
		return 0, &ConversionError{Value: v, Target: "int"}
	}
}
