package model

import (
	"strconv"
	"time"
)

// Value is either a defined real number or undefined (not enough history, degenerate division).
// The zero Value is undefined.
type Value struct {
	v  float64
	ok bool
}

// Undefined is the missing value.
var Undefined = Value{}

// Defined wraps a real number.
func Defined(v float64) Value { return Value{v: v, ok: true} }

// Get returns the number and whether it is defined.
func (v Value) Get() (float64, bool) { return v.v, v.ok }

// IsDefined reports whether v holds a number.
func (v Value) IsDefined() bool { return v.ok }

// Or returns the number, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

func (v Value) String() string {
	if !v.ok {
		return "undefined"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// MarshalJSON encodes undefined as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.v, 'f', -1, 64), nil
}

// Point is one timestamped value of a derived series.
type Point struct {
	Time  time.Time `json:"time"`
	Value Value     `json:"value"`
}

// Series is a derived series, aligned with its source PriceSeries unless the producer says otherwise.
type Series []Point

// NewSeries zips timestamps with values. Both slices must have the same length.
func NewSeries(times []time.Time, values []Value) Series {
	out := make(Series, len(values))
	for i, v := range values {
		out[i] = Point{Time: times[i], Value: v}
	}
	return out
}

// Values returns the bare values.
func (s Series) Values() []Value {
	out := make([]Value, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Defined returns the number of defined points.
func (s Series) Defined() int {
	n := 0
	for _, p := range s {
		if p.Value.ok {
			n++
		}
	}
	return n
}

// Last returns the latest defined point.
func (s Series) Last() (Point, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Value.ok {
			return s[i], true
		}
	}
	return Point{}, false
}

// Compact drops undefined points.
func (s Series) Compact() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Value.ok {
			out = append(out, p)
		}
	}
	return out
}
