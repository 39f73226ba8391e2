package logger

import (
	"time"

	"github.com/philipp01105/sessionlog/core"
)

// Part helper functions for convenience. Keyed parts render as
// "key=value" continuation lines.

// String creates a string part
func String(key, val string) core.Part {
	return core.Part{Key: key, Type: core.StringType, Str: val}
}

// Int creates an int part
func Int(key string, val int) core.Part {
	return core.Part{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 part
func Int64(key string, val int64) core.Part {
	return core.Part{Key: key, Type: core.Int64Type, Int64: val}
}

// Float64 creates a float64 part
func Float64(key string, val float64) core.Part {
	return core.Part{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool part
func Bool(key string, val bool) core.Part {
	int64Val := int64(0)
	if val {
		int64Val = 1
	}
	return core.Part{Key: key, Type: core.BoolType, Int64: int64Val}
}

// Time creates a time part
func Time(key string, val time.Time) core.Part {
	return core.Part{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration part
func Duration(key string, val time.Duration) core.Part {
	return core.Part{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an error part keyed "error"
func Err(err error) core.Part {
	if err == nil {
		return core.Part{Key: "error", Type: core.StringType, Str: "<nil>"}
	}
	return core.Part{Key: "error", Type: core.ErrorType, Str: err.Error()}
}

// Any creates a part from an arbitrary value
func Any(key string, val interface{}) core.Part {
	return core.Part{Key: key, Type: core.AnyType, Any: val}
}

// Line creates an unkeyed continuation part
func Line(s string) core.Part {
	return core.Text(s)
}
