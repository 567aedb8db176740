package controller

import (
	"errors"
	"fmt"

	"github.com/jask/decimalinput/internal/engine"
)

// SyntaxMode selects the grammar applied to raw text before anything else.
type SyntaxMode int

const (
	// SyntaxDecimal allows signed decimals.
	SyntaxDecimal SyntaxMode = iota
	// SyntaxPositive allows unsigned decimals only.
	SyntaxPositive
	// SyntaxCustom delegates to a caller predicate.
	SyntaxCustom
)

func (m SyntaxMode) String() string {
	switch m {
	case SyntaxDecimal:
		return "decimal"
	case SyntaxPositive:
		return "positive"
	case SyntaxCustom:
		return "custom"
	default:
		return fmt.Sprintf("SyntaxMode(%d)", int(m))
	}
}

var errMissingSyntax = errors.New("custom syntax mode requires a predicate")

type settings struct {
	syntax    SyntaxMode
	custom    engine.SyntaxPredicate
	limits    engine.Limits
	limitsErr error
	predicate engine.ValuePredicate
	format    engine.FormatFunc
}

// Option configures Rules.
type Option func(*settings)

// WithSyntax selects the built-in grammar.
func WithSyntax(mode SyntaxMode) Option {
	return func(s *settings) { s.syntax = mode }
}

// WithCustomSyntax replaces the grammar with pred. Limits still apply.
func WithCustomSyntax(pred engine.SyntaxPredicate) Option {
	return func(s *settings) {
		s.syntax = SyntaxCustom
		s.custom = pred
	}
}

// WithLimits bounds precision and scale.
func WithLimits(precision, scale int) Option {
	return func(s *settings) {
		s.limits, s.limitsErr = engine.NewLimits(precision, scale)
	}
}

// WithPrecision bounds precision only; scale may use every digit.
func WithPrecision(precision int) Option {
	return WithLimits(precision, precision)
}

// WithBoundLimits uses limits that were already validated.
func WithBoundLimits(limits engine.Limits) Option {
	return func(s *settings) {
		s.limits, s.limitsErr = limits, nil
	}
}

// WithValuePredicate adds a semantic check on parsed numbers.
func WithValuePredicate(pred engine.ValuePredicate) Option {
	return func(s *settings) { s.predicate = pred }
}

// WithFormatter sets how committed numbers are displayed.
func WithFormatter(fn engine.FormatFunc) Option {
	return func(s *settings) { s.format = fn }
}

// Rules is the immutable set of checks and the formatter bound for one
// configuration. Changing any of them means building new Rules and
// mounting a new Controller.
type Rules struct {
	mode   SyntaxMode
	syntax engine.SyntaxPredicate
	limits engine.Limits
	valid  func(engine.Value) bool
	format func(engine.Value) string
}

// NewRules binds opts. Invalid precision/scale is reported here and
// nowhere else.
func NewRules(opts ...Option) (Rules, error) {
	s := settings{syntax: SyntaxDecimal, limits: engine.NoLimits()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.limitsErr != nil {
		return Rules{}, s.limitsErr
	}

	var syntax engine.SyntaxPredicate
	switch s.syntax {
	case SyntaxDecimal:
		syntax = engine.IsDecimalInput
	case SyntaxPositive:
		syntax = engine.IsPositiveDecimalInput
	case SyntaxCustom:
		if s.custom == nil {
			return Rules{}, errMissingSyntax
		}
		syntax = s.custom
	default:
		return Rules{}, fmt.Errorf("unknown syntax mode %d", int(s.syntax))
	}

	return Rules{
		mode:   s.syntax,
		syntax: syntax,
		limits: s.limits,
		valid:  engine.ValueValidator(s.predicate),
		format: engine.Formatter(s.format),
	}, nil
}

// MustRules is NewRules for static configuration.
func MustRules(opts ...Option) Rules {
	r, err := NewRules(opts...)
	if err != nil {
		panic(fmt.Sprintf("controller.MustRules: %v", err))
	}
	return r
}

// AcceptsInput runs the syntax check and then the limits check.
func (r Rules) AcceptsInput(input string) bool {
	return r.syntax(input) && r.limits.Allows(input)
}

// AcceptsValue runs the value predicate.
func (r Rules) AcceptsValue(v engine.Value) bool {
	return r.valid(v)
}

func (r Rules) Format(v engine.Value) string {
	return r.format(v)
}

func (r Rules) Mode() SyntaxMode      { return r.mode }
func (r Rules) Limits() engine.Limits { return r.limits }
func (r Rules) String() string        { return r.mode.String() + " " + r.limits.String() }
