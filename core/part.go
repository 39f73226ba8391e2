package core

import (
	"fmt"
	"strconv"
	"time"
)

// PartType represents the type of a part value
type PartType uint8

const (
	StringType PartType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Part is one ordered fragment of a log message. The first part of an
// Entry is the primary message; the rest are continuation lines. Key is
// optional and only affects the rendered text.
type Part struct {
	Key     string
	Type    PartType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// Text creates an unkeyed string part
func Text(s string) Part {
	return Part{Type: StringType, Str: s}
}

// Texts converts each string into an unkeyed part
func Texts(ss ...string) []Part {
	parts := make([]Part, len(ss))
	for i, s := range ss {
		parts[i] = Text(s)
	}
	return parts
}

// Value returns the string representation of a part's value, without its key
func (p Part) Value() string {
	switch p.Type {
	case StringType:
		return p.Str
	case IntType, Int64Type:
		return strconv.FormatInt(p.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(p.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(p.Int64 == 1)
	case TimeType:
		return time.Unix(0, p.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(p.Int64).String()
	case ErrorType:
		return p.Str
	case AnyType:
		return fmt.Sprintf("%v", p.Any)
	default:
		return ""
	}
}

// Text returns the display text of the part: "key=value" when keyed.
func (p Part) Text() string {
	if p.Key == "" {
		return p.Value()
	}
	return p.Key + "=" + p.Value()
}
