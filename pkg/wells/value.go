package wells

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the scalar type held by a Value.
type Kind int

// The scalar kinds a layout file can express. Missing marks a well that has
// no value for an attribute.
const (
	Missing Kind = iota
	String
	Int
	Float
	Bool
	Time
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single attribute value of one well. The zero Value is missing.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: Int, i: i} }

// FloatValue returns a float value. NaN is treated as missing.
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: Float, f: f}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// TimeValue returns a date/time value.
func TimeValue(t time.Time) Value { return Value{kind: Time, t: t} }

// ValueOf converts a decoded scalar into a Value. It reports false for types
// that are not scalars (arrays, tables).
func ValueOf(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Value{}, true
	case string:
		return StringValue(x), true
	case int:
		return IntValue(int64(x)), true
	case int64:
		return IntValue(x), true
	case int32:
		return IntValue(int64(x)), true
	case float64:
		return FloatValue(x), true
	case float32:
		return FloatValue(float64(x)), true
	case bool:
		return BoolValue(x), true
	case time.Time:
		return TimeValue(x), true
	case Value:
		return x, true
	default:
		return Value{}, false
	}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool { return v.kind == Missing }

// IsNumber reports whether v is an int or a float.
func (v Value) IsNumber() bool { return v.kind == Int || v.kind == Float }

// Float returns the numeric value of an int or float value.
func (v Value) Float() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

// Interface returns v as a plain Go value (nil when missing).
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return v.i
	case Float:
		return v.f
	case Bool:
		return v.b
	case Time:
		return v.t
	default:
		return nil
	}
}

// Key returns the identity of v used to find distinct values. Ints and floats
// that are numerically equal share a key.
func (v Value) Key() string {
	switch v.kind {
	case String:
		return "s:" + v.s
	case Int:
		return "n:" + strconv.FormatInt(v.i, 10)
	case Float:
		if i, ok := integral(v.f); ok {
			return "n:" + strconv.FormatInt(i, 10)
		}
		return "n:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		return "b:" + strconv.FormatBool(v.b)
	case Time:
		return "t:" + v.t.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// integral converts f to an int64 when no precision is lost.
func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Equal reports whether v and w are the same value.
func (v Value) Equal(w Value) bool {
	return v.Key() == w.Key()
}

// String formats v for legends and tables.
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case Time:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 && v.t.Nanosecond() == 0 {
			return v.t.Format(time.DateOnly)
		}
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Comparable reports whether v and w belong to the same total order: numbers
// with numbers, bools with bools, times with times, strings with strings.
func Comparable(v, w Value) bool {
	switch {
	case v.IsNumber() && w.IsNumber():
		return true
	case v.kind == Missing || w.kind == Missing:
		return false
	default:
		return v.kind == w.kind
	}
}

// Less orders two comparable values. The result is meaningless when
// Comparable(v, w) is false.
func Less(v, w Value) bool {
	switch {
	case v.kind == Int && w.kind == Int:
		return v.i < w.i
	case v.IsNumber():
		return v.Float() < w.Float()
	case v.kind == Bool:
		return !v.b && w.b
	case v.kind == Time:
		return v.t.Before(w.t)
	default:
		return v.s < w.s
	}
}
