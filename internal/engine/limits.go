package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidLimits is returned when a precision/scale pair cannot be used.
var ErrInvalidLimits = errors.New("invalid precision/scale")

// Unbounded stands in for "no limit" on either axis.
const Unbounded = math.MaxInt

// Limits bounds the number of significant digits (precision) and the number
// of fractional digits (scale) of an input string.
type Limits struct {
	precision int
	scale     int
}

// NewLimits validates precision and scale. Precision must be positive, scale
// non-negative and no larger than precision.
func NewLimits(precision, scale int) (Limits, error) {
	switch {
	case precision <= 0:
		return Limits{}, fmt.Errorf("%w: precision %d must be positive", ErrInvalidLimits, precision)
	case scale < 0:
		return Limits{}, fmt.Errorf("%w: scale %d must not be negative", ErrInvalidLimits, scale)
	case precision < scale:
		return Limits{}, fmt.Errorf("%w: scale %d exceeds precision %d", ErrInvalidLimits, scale, precision)
	}
	return Limits{precision: precision, scale: scale}, nil
}

// NewLimitsFloat is NewLimits for values that arrive untyped, e.g. from a
// config file. Non-integral values are rejected.
func NewLimitsFloat(precision, scale float64) (Limits, error) {
	if !isIntegral(precision) {
		return Limits{}, fmt.Errorf("%w: precision %v must be an integer", ErrInvalidLimits, precision)
	}
	if !isIntegral(scale) {
		return Limits{}, fmt.Errorf("%w: scale %v must be an integer", ErrInvalidLimits, scale)
	}
	p, s := clampInt(precision), clampInt(scale)
	return NewLimits(p, s)
}

// NoLimits never rejects a digit string on length.
func NoLimits() Limits {
	return Limits{precision: Unbounded, scale: Unbounded}
}

func (l Limits) Precision() int { return l.precision }
func (l Limits) Scale() int     { return l.scale }

// Bounded reports whether either axis is limited.
func (l Limits) Bounded() bool {
	return l.precision != Unbounded || l.scale != Unbounded
}

// Allows reports whether input stays within the limits. It also fails when
// the digits left after removing the sign, the decimal point and leading
// zeros are not all 0-9.
func (l Limits) Allows(input string) bool {
	precision, scale, ok := Measure(input)
	if !ok {
		return false
	}
	return scale <= l.scale && precision <= l.precision
}

// Measure returns the actual precision and scale of input. Leading zeros
// never count toward precision, so "000000" has precision 0 and "100.01"
// has precision 5.
func Measure(input string) (precision, scale int, ok bool) {
	left, right, _ := strings.Cut(input, ".")
	scale = len(right)

	digits := left + right
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	digits = strings.TrimLeft(digits, "0")
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, false
		}
	}
	return len(digits), scale, true
}

func (l Limits) String() string {
	if !l.Bounded() {
		return "unbounded"
	}
	return fmt.Sprintf("precision=%s scale=%s", axis(l.precision), axis(l.scale))
}

func axis(n int) string {
	if n == Unbounded {
		return "∞"
	}
	return fmt.Sprint(n)
}

func isIntegral(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}

func clampInt(f float64) int {
	if f >= float64(Unbounded) {
		return Unbounded
	}
	if f <= float64(math.MinInt) {
		return math.MinInt
	}
	return int(f)
}
