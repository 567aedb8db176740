// Package controller reconciles what the user is typing with the number it
// represents. A Controller is mounted once per initial value; every focus,
// blur and edit runs to completion before the next one.
package controller

import "github.com/jask/decimalinput/internal/engine"

// State is the coarse phase of a mounted field.
type State int

const (
	StateEmpty State = iota
	StateEditing
	StateFormatted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateEditing:
		return "editing"
	case StateFormatted:
		return "formatted"
	default:
		return "unknown"
	}
}

// Hooks are the host's notification points. All are optional.
type Hooks struct {
	// OnChange receives every propagated value, including the empty value
	// on clear.
	OnChange func(engine.Value)
	// OnValidChange receives every validity recomputation.
	OnValidChange func(valid bool)
	// OnCommit receives the parsed value after a successful blur.
	OnCommit func(engine.Value)
	// AfterInput runs after each non-empty edit with whether it was
	// accepted. Hosts use it to keep the caret in place on rejection.
	AfterInput func(accepted bool)
}

// Output is what the controller last handed to its host.
type Output struct {
	Value      engine.Value
	Valid      bool
	ValidKnown bool
}

// Controller owns the raw and display text of one mounted field.
type Controller struct {
	rules   Rules
	hooks   Hooks
	raw     string
	display string
	focused bool
	out     Output
}

// Mount creates a controller for initial. An initial value that fails the
// input checks is dropped silently and the field starts empty. Otherwise
// validity is propagated, the value is propagated when valid, and the
// display shows the formatted value.
func Mount(rules Rules, initial engine.Value, hooks Hooks) *Controller {
	c := &Controller{rules: rules, hooks: hooks}

	n, ok := initial.Float()
	if !ok {
		return c
	}
	text := engine.FormatPlain(n)
	if !rules.AcceptsInput(text) {
		return c
	}

	c.raw = text
	c.display = rules.Format(initial)

	valid := rules.AcceptsValue(initial)
	c.setValid(valid)
	if valid {
		c.setValue(initial)
	}
	return c
}

// Input applies an edit that replaces the whole text. It reports whether
// the edit was taken; a rejected edit leaves every field untouched.
func (c *Controller) Input(text string) bool {
	if text == "" {
		c.clear()
		return true
	}

	accepted := c.rules.AcceptsInput(text)
	if c.hooks.AfterInput != nil {
		c.hooks.AfterInput(accepted)
	}
	if !accepted {
		return false
	}

	c.raw = text
	c.display = text

	v := engine.Parse(text)
	valid := c.rules.AcceptsValue(v)
	c.setValid(valid)
	if valid {
		c.setValue(v)
	}
	return true
}

// Validity is left as is; resetting it on clear is up to the host.
func (c *Controller) clear() {
	c.raw = ""
	c.display = ""
	c.setValue(engine.None())
}

// Focus shows the raw text again so the unformatted number is edited.
func (c *Controller) Focus() {
	if c.focused {
		return
	}
	c.focused = true
	c.display = c.raw
}

// Blur formats the display text. Display text that fails the input checks
// is left alone.
func (c *Controller) Blur() {
	if !c.focused {
		return
	}
	c.focused = false
	if !c.rules.AcceptsInput(c.display) {
		return
	}
	v := engine.Parse(c.display)
	c.display = c.rules.Format(v)
	if c.hooks.OnCommit != nil {
		c.hooks.OnCommit(v)
	}
}

func (c *Controller) setValue(v engine.Value) {
	c.out.Value = v
	if c.hooks.OnChange != nil {
		c.hooks.OnChange(v)
	}
}

func (c *Controller) setValid(valid bool) {
	c.out.Valid = valid
	c.out.ValidKnown = true
	if c.hooks.OnValidChange != nil {
		c.hooks.OnValidChange(valid)
	}
}

func (c *Controller) Display() string { return c.display }
func (c *Controller) Raw() string     { return c.raw }
func (c *Controller) Focused() bool   { return c.focused }
func (c *Controller) Output() Output  { return c.out }
func (c *Controller) Rules() Rules    { return c.rules }

func (c *Controller) State() State {
	switch {
	case c.raw == "":
		return StateEmpty
	case c.focused:
		return StateEditing
	default:
		return StateFormatted
	}
}
