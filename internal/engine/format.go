package engine

import "strconv"

// FormatFunc renders a number for display while the field is not focused.
type FormatFunc func(n float64) string

// FormatPlain is the default conversion: shortest representation that
// round-trips, never in exponent form.
func FormatPlain(n float64) string {
	if n == 0 {
		n = 0 // -0 prints as "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Formatter wraps fn so that an empty Value renders as "". A nil fn falls
// back to FormatPlain.
func Formatter(fn FormatFunc) func(Value) string {
	if fn == nil {
		fn = FormatPlain
	}
	return func(v Value) string {
		n, ok := v.Float()
		if !ok {
			return ""
		}
		return fn(n)
	}
}
