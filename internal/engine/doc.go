// Package engine holds the decimal input rules: the syntax grammar for
// partially typed decimal literals, the precision/scale limits check, value
// predicate composition and display formatting.
//
// Everything here is pure and deterministic. Stateful editing lives in the
// controller package.
package engine
