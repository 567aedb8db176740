package engine

import "regexp"

var (
	decimalRe         = regexp.MustCompile(`^[+-]?([0-9]+([.][0-9]*)?|[.][0-9]+)$`)
	positiveDecimalRe = regexp.MustCompile(`^([0-9]+([.][0-9]*)?|[.][0-9]+)$`)
)

// Tokens a user passes through while typing toward a valid literal.
var (
	forgivable         = map[string]struct{}{"": {}, ".": {}, "-": {}, "+": {}, "-.": {}, "+.": {}}
	forgivablePositive = map[string]struct{}{"": {}, ".": {}}
)

// SyntaxPredicate reports whether raw text is acceptable as (possibly partial) input.
type SyntaxPredicate func(input string) bool

// IsDecimalInput accepts signed decimal literals and the incomplete tokens
// "", ".", "-", "+", "-." and "+.".
func IsDecimalInput(input string) bool {
	if _, ok := forgivable[input]; ok {
		return true
	}
	return decimalRe.MatchString(input)
}

// IsPositiveDecimalInput is IsDecimalInput without signs.
func IsPositiveDecimalInput(input string) bool {
	if _, ok := forgivablePositive[input]; ok {
		return true
	}
	return positiveDecimalRe.MatchString(input)
}
