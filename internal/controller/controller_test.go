package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/decimalinput/internal/engine"
)

// recorder is a host that tracks notifications the way the demo does.
type recorder struct {
	values   []engine.Value
	valids   []bool
	commits  []engine.Value
	accepted []bool
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnChange:      func(v engine.Value) { r.values = append(r.values, v) },
		OnValidChange: func(ok bool) { r.valids = append(r.valids, ok) },
		OnCommit:      func(v engine.Value) { r.commits = append(r.commits, v) },
		AfterInput:    func(ok bool) { r.accepted = append(r.accepted, ok) },
	}
}

func typeText(c *Controller, text string) {
	for i := 1; i <= len(text); i++ {
		c.Input(c.Display() + text[i-1:i])
	}
}

func TestMountEmpty(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(), engine.None(), rec.hooks())

	require.Equal(t, StateEmpty, c.State())
	require.Equal(t, "", c.Display())
	require.Empty(t, rec.values)
	require.Empty(t, rec.valids)
	require.False(t, c.Output().ValidKnown)
}

func TestMountWithinLimits(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(WithLimits(5, 2)), engine.Some(10), rec.hooks())

	require.Equal(t, []engine.Value{engine.Some(10)}, rec.values)
	require.Equal(t, []bool{true}, rec.valids)
	require.Equal(t, "10", c.Display())
	require.Equal(t, StateFormatted, c.State())
	require.Equal(t, Output{Value: engine.Some(10), Valid: true, ValidKnown: true}, c.Output())
}

func TestMountOutsideLimitsFallsBackToEmpty(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(WithLimits(5, 2)), engine.Some(1.001), rec.hooks())

	require.Equal(t, StateEmpty, c.State())
	require.Equal(t, "", c.Display())
	require.Empty(t, rec.values)
	require.Empty(t, rec.valids)
}

func TestMountInvalidValueReportsValidityOnly(t *testing.T) {
	rec := &recorder{}
	nonNegative := WithValuePredicate(func(n float64) bool { return n >= 0 })
	c := Mount(MustRules(nonNegative), engine.Some(-20.4), rec.hooks())

	require.Equal(t, []bool{false}, rec.valids)
	require.Empty(t, rec.values)
	require.Equal(t, "-20.4", c.Display())
}

func TestMountUsesFormatterForDisplayButPlainForRaw(t *testing.T) {
	financial := WithFormatter(func(n float64) string {
		if n < 0 {
			return "(" + engine.FormatPlain(-n) + ")"
		}
		return engine.FormatPlain(n)
	})
	c := Mount(MustRules(financial), engine.Some(-0.5), Hooks{})

	require.Equal(t, "(0.5)", c.Display())
	require.Equal(t, "-0.5", c.Raw())

	c.Focus()
	require.Equal(t, "-0.5", c.Display())
	require.Equal(t, StateEditing, c.State())
}

func TestTypingPastScaleIsRejected(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(WithLimits(5, 2)), engine.None(), rec.hooks())
	c.Focus()

	typeText(c, "1.001")

	require.Equal(t, "1.00", c.Display())
	require.Equal(t, []bool{true, true, true, true, false}, rec.accepted)
	require.Equal(t, engine.Some(1), c.Output().Value)
}

func TestRejectedKeystrokeChangesNothing(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(), engine.None(), rec.hooks())
	c.Focus()
	require.True(t, c.Input("12"))
	values, valids := len(rec.values), len(rec.valids)

	require.False(t, c.Input("12a"))
	require.Equal(t, "12", c.Display())
	require.Equal(t, "12", c.Raw())
	require.Len(t, rec.values, values)
	require.Len(t, rec.valids, valids)
}

func TestIncompleteTokensAreKeptButCarryNoValue(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(), engine.None(), rec.hooks())
	c.Focus()

	require.True(t, c.Input("-"))
	require.True(t, c.Input("-."))

	require.Equal(t, "-.", c.Display())
	require.Equal(t, []bool{false, false}, rec.valids)
	require.Empty(t, rec.values)
}

func TestInvalidValueLeavesLastValueStale(t *testing.T) {
	rec := &recorder{}
	integer := WithValuePredicate(func(n float64) bool { return n == float64(int64(n)) })
	c := Mount(MustRules(integer), engine.None(), rec.hooks())
	c.Focus()

	typeText(c, "1.5")

	require.Equal(t, "1.5", c.Display())
	require.Equal(t, []engine.Value{engine.Some(1), engine.Some(1)}, rec.values)
	require.Equal(t, []bool{true, true, false}, rec.valids)
	require.Equal(t, Output{Value: engine.Some(1), Valid: false, ValidKnown: true}, c.Output())
}

func TestClearPropagatesEmptyValueAndKeepsValidity(t *testing.T) {
	rec := &recorder{}
	nonNegative := WithValuePredicate(func(n float64) bool { return n >= 0 })
	c := Mount(MustRules(nonNegative), engine.None(), rec.hooks())
	c.Focus()
	require.True(t, c.Input("-"))
	require.True(t, c.Input("-1"))
	require.Equal(t, []bool{false, false}, rec.valids)

	require.True(t, c.Input(""))

	require.Equal(t, []engine.Value{engine.None()}, rec.values)
	require.Equal(t, []bool{false, false}, rec.valids, "clear must not touch validity")
	require.Equal(t, "", c.Display())
	require.Equal(t, StateEmpty, c.State())
	require.False(t, c.Output().Valid)
	require.Len(t, rec.accepted, 2, "clear does not run the input hook")
}

func TestBlurFormatsAndCommits(t *testing.T) {
	rec := &recorder{}
	financial := WithFormatter(func(n float64) string {
		if n < 0 {
			return "(" + engine.FormatPlain(-n) + ")"
		}
		return engine.FormatPlain(n)
	})
	c := Mount(MustRules(financial), engine.None(), rec.hooks())
	c.Focus()
	typeText(c, "-2.50")

	c.Blur()

	require.Equal(t, "(2.5)", c.Display())
	require.Equal(t, "-2.50", c.Raw())
	require.Equal(t, StateFormatted, c.State())
	require.Equal(t, []engine.Value{engine.Some(-2.5)}, rec.commits)

	c.Focus()
	require.Equal(t, "-2.50", c.Display())
}

func TestBlurOfIncompleteTokenShowsEmpty(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(), engine.None(), rec.hooks())
	c.Focus()
	require.True(t, c.Input("-."))

	c.Blur()

	require.Equal(t, "", c.Display())
	require.Equal(t, []engine.Value{engine.None()}, rec.commits)
	c.Focus()
	require.Equal(t, "-.", c.Display())
}

func TestBlurLeavesUnacceptableDisplayAlone(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(WithLimits(5, 2)), engine.None(), rec.hooks())
	c.Focus()
	// Simulate a programmatic edit that bypassed Input.
	c.display = "12abc"

	c.Blur()

	require.Equal(t, "12abc", c.Display())
	require.Empty(t, rec.commits)
	require.False(t, c.Focused())
}

func TestBlurWithoutFocusIsNoop(t *testing.T) {
	rec := &recorder{}
	c := Mount(MustRules(), engine.Some(3), rec.hooks())
	c.Blur()
	require.Empty(t, rec.commits)
	require.Equal(t, "3", c.Display())
}

func TestOutOfBoundsValueIsStillDisplayedWhileFocused(t *testing.T) {
	positive := WithValuePredicate(func(n float64) bool { return n > 0 })
	c := Mount(MustRules(positive), engine.None(), Hooks{})
	c.Focus()
	require.True(t, c.Input("0"))
	require.Equal(t, "0", c.Display())
	require.False(t, c.Output().Valid)
}

func TestNilHooksAreSafe(t *testing.T) {
	c := Mount(MustRules(), engine.Some(1), Hooks{})
	c.Focus()
	require.True(t, c.Input("12"))
	require.False(t, c.Input("x"))
	require.True(t, c.Input(""))
	c.Blur()
	require.Equal(t, StateEmpty, c.State())
}

func TestRemountDiscardsTypedState(t *testing.T) {
	rules := MustRules(WithLimits(5, 2))
	c := Mount(rules, engine.Some(10), Hooks{})
	c.Focus()
	require.True(t, c.Input("10.5"))

	c = Mount(rules, engine.Some(-20.4), Hooks{})

	require.False(t, c.Focused())
	require.Equal(t, "-20.4", c.Display())
	require.Equal(t, "-20.4", c.Raw())
	require.Equal(t, engine.Some(-20.4), c.Output().Value)
}
