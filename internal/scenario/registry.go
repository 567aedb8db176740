package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/govalues/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jask/decimalinput/internal/controller"
	"github.com/jask/decimalinput/internal/engine"
)

// maxDisplayScale caps fractional digits for formatters when the field
// itself has no scale limit.
const maxDisplayScale = 15

var predicates = map[string]engine.ValuePredicate{
	"integer":      func(n float64) bool { return n == math.Trunc(n) },
	"non_negative": func(n float64) bool { return n >= 0 },
	"positive":     func(n float64) bool { return n > 0 },
	"non_zero":     func(n float64) bool { return n != 0 },
}

// formatContext carries what a formatter may depend on.
type formatContext struct {
	scale  int
	locale language.Tag
}

var formats = map[string]func(formatContext) engine.FormatFunc{
	"plain":     func(formatContext) engine.FormatFunc { return engine.FormatPlain },
	"financial": func(formatContext) engine.FormatFunc { return financial },
	"fixed":     fixed,
	"grouped":   grouped,
}

var syntaxes = map[string]controller.SyntaxMode{
	"decimal":  controller.SyntaxDecimal,
	"positive": controller.SyntaxPositive,
}

// financial shows negatives in parentheses.
func financial(n float64) string {
	if n < 0 {
		return "(" + engine.FormatPlain(math.Abs(n)) + ")"
	}
	return engine.FormatPlain(n)
}

// fixed rounds half-even to the field scale and pads with zeros.
func fixed(fc formatContext) engine.FormatFunc {
	scale := fc.scale
	if scale > decimal.MaxScale {
		scale = decimal.MaxScale
	}
	return func(n float64) string {
		d, err := decimal.Parse(engine.FormatPlain(n))
		if err != nil {
			// More digits than a Decimal holds.
			return engine.FormatPlain(n)
		}
		return fmt.Sprintf("%.*f", scale, d)
	}
}

// grouped inserts locale thousands separators.
func grouped(fc formatContext) engine.FormatFunc {
	p := message.NewPrinter(fc.locale)
	return func(n float64) string {
		return p.Sprint(number.Decimal(n, number.MaxFractionDigits(fc.scale)))
	}
}

// Defaults fill in what a scenario leaves unset.
type Defaults struct {
	// Precision and Scale apply when the scenario sets neither. Zero
	// precision means unbounded; a nil Scale takes the precision.
	Precision int
	Scale     *int
	Locale    language.Tag
}

// Limits resolves the scenario's precision and scale. A missing scale
// takes the precision; a missing precision is unbounded.
func (s Scenario) Limits(d Defaults) (engine.Limits, error) {
	p, sc := s.Precision, s.Scale
	if p == nil && sc == nil {
		return d.limits()
	}
	precision := float64(engine.Unbounded)
	if p != nil {
		precision = *p
	}
	scale := precision
	if sc != nil {
		scale = *sc
	}
	return engine.NewLimitsFloat(precision, scale)
}

func (d Defaults) limits() (engine.Limits, error) {
	switch {
	case d.Precision <= 0 && d.Scale != nil:
		return engine.Limits{}, fmt.Errorf("%w: default scale %d without a default precision", engine.ErrInvalidLimits, *d.Scale)
	case d.Precision <= 0:
		return engine.NoLimits(), nil
	case d.Scale == nil:
		return engine.NewLimits(d.Precision, d.Precision)
	}
	return engine.NewLimits(d.Precision, *d.Scale)
}

// Rules binds the scenario into controller rules.
func (s Scenario) Rules(d Defaults) (controller.Rules, error) {
	limits, err := s.Limits(d)
	if err != nil {
		return controller.Rules{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	opts := []controller.Option{controller.WithBoundLimits(limits)}
	if s.Syntax != "" {
		opts = append(opts, controller.WithSyntax(syntaxes[s.Syntax]))
	}
	if s.Predicate != "" {
		opts = append(opts, controller.WithValuePredicate(predicates[s.Predicate]))
	}
	if s.Format != "" {
		scale := limits.Scale()
		if scale > maxDisplayScale {
			scale = maxDisplayScale
		}
		locale := d.Locale
		if locale == language.Und {
			locale = language.English
		}
		opts = append(opts, controller.WithFormatter(formats[s.Format](formatContext{scale: scale, locale: locale})))
	}

	rules, err := controller.NewRules(opts...)
	if err != nil {
		return controller.Rules{}, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return rules, nil
}

func predicateNames() []string { return keys(predicates) }
func formatNames() []string    { return keys(formats) }
func syntaxNames() []string    { return keys(syntaxes) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// checkName accepts "" or a known name, otherwise it suggests the closest
// known name.
func checkName(kind, name string, known []string) error {
	if name == "" {
		return nil
	}
	for _, k := range known {
		if k == name {
			return nil
		}
	}
	if s := suggest(name, known); s != "" {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, name, s)
	}
	return fmt.Errorf("unknown %s %q (known: %v)", kind, name, known)
}

func suggest(name string, known []string) string {
	best, bestDist := "", math.MaxInt
	for _, k := range known {
		if d := levenshtein.ComputeDistance(name, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist > max(2, len(name)/2) {
		return ""
	}
	return best
}
