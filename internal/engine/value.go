package engine

import (
	"math"
	"strconv"
)

// Value is an optional finite number. The zero Value holds no number.
type Value struct {
	n   float64
	set bool
}

// Some wraps n. NaN and infinities produce an empty Value.
func Some(n float64) Value {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}
	}
	return Value{n: n, set: true}
}

// None returns the empty Value.
func None() Value { return Value{} }

func (v Value) IsSet() bool { return v.set }

// Float returns the number and whether one is present.
func (v Value) Float() (float64, bool) { return v.n, v.set }

func (v Value) String() string {
	if !v.set {
		return "?"
	}
	return FormatPlain(v.n)
}

// Parse converts text that already passed a syntax check into a Value.
// Incomplete tokens such as "-." and overflowing literals yield None.
func Parse(input string) Value {
	n, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return None()
	}
	return Some(n)
}

// ValuePredicate is a caller supplied semantic test, e.g. "non-negative".
type ValuePredicate func(n float64) bool

// ValueValidator wraps pred so that it only ever sees finite numbers. An
// empty Value is always invalid; a nil pred accepts every number.
func ValueValidator(pred ValuePredicate) func(Value) bool {
	return func(v Value) bool {
		n, ok := v.Float()
		if !ok {
			return false
		}
		if pred == nil {
			return true
		}
		return pred(n)
	}
}
