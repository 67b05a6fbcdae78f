package lang

import (
	"math"
	"strconv"
)

// Value is a runtime value: [Number], [Text] or [Bool].
type Value interface {
	// Type returns the name of the value's type as used in error messages.
	Type() string
	// String returns the value as print renders it.
	String() string
	value()
}

type (
	Number float64
	Text   string
	Bool   bool
)

func (Number) Type() string { return "number" }
func (Text) Type() string   { return "string" }
func (Bool) Type() string   { return "bool" }

func (Number) value() {}
func (Text) value()   {}
func (Bool) value()   {}

// String renders integral values without a fractional part, values smaller
// in magnitude than 1e-4 in exponent form, and everything else in the
// shortest decimal form that round-trips.
func (n Number) String() string {
	f := float64(n)

	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return "0"
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', 0, 64)
	case math.Abs(f) < 1e-4:
		return strconv.FormatFloat(f, 'e', -1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func (t Text) String() string { return string(t) }

func (b Bool) String() string {
	if b {
		return "True"
	}

	return "False"
}
