// Package decimalfield is a Bubble Tea text field for decimal numbers. It
// hosts a controller.Controller behind a bubbles textinput: every edit is
// offered to the controller first and rejected edits never reach the
// screen.
package decimalfield

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decimalinput/internal/controller"
	"github.com/jask/decimalinput/internal/engine"
)

// Event is a notification from a field to its host. Hosts drain events
// with Events right after calling into the field, so they are applied in
// order and before the next key is handled.
type Event interface {
	FieldID() string
}

// ValueChanged carries a value the field propagated.
type ValueChanged struct {
	ID    string
	Value engine.Value
}

// ValidityChanged carries a recomputed validity flag.
type ValidityChanged struct {
	ID    string
	Valid bool
}

// Committed is reported after the field loses focus with acceptable text.
type Committed struct {
	ID    string
	Value engine.Value
}

func (e ValueChanged) FieldID() string    { return e.ID }
func (e ValidityChanged) FieldID() string { return e.ID }
func (e Committed) FieldID() string       { return e.ID }

// Model is one decimal field. Use New; the zero Model is not usable.
type Model struct {
	id      string
	rules   controller.Rules
	ctrl    *controller.Controller
	input   textinput.Model
	pending []Event
}

// New mounts a field. Events produced by the mount are waiting in Events.
func New(id string, rules controller.Rules, initial engine.Value) *Model {
	m := &Model{id: id, rules: rules, input: textinput.New()}
	m.input.Prompt = ""
	m.mount(initial)
	return m
}

// Reset discards typed state and mounts again with initial, unfocused.
func (m *Model) Reset(initial engine.Value) {
	m.input.Blur()
	m.mount(initial)
}

func (m *Model) mount(initial engine.Value) {
	m.pending = nil
	m.ctrl = controller.Mount(m.rules, initial, controller.Hooks{
		OnChange: func(v engine.Value) {
			m.pending = append(m.pending, ValueChanged{ID: m.id, Value: v})
		},
		OnValidChange: func(valid bool) {
			m.pending = append(m.pending, ValidityChanged{ID: m.id, Valid: valid})
		},
		OnCommit: func(v engine.Value) {
			m.pending = append(m.pending, Committed{ID: m.id, Value: v})
		},
	})
	m.input.SetValue(m.ctrl.Display())
}

// Focus shows the raw text with the cursor at the end.
func (m *Model) Focus() tea.Cmd {
	m.ctrl.Focus()
	m.input.SetValue(m.ctrl.Display())
	m.input.CursorEnd()
	return m.input.Focus()
}

// Blur formats the text and reports the commit, if any.
func (m *Model) Blur() {
	m.input.Blur()
	m.ctrl.Blur()
	m.input.SetValue(m.ctrl.Display())
}

// Update handles keys while focused. Edits go through the controller; a
// rejected edit restores the previous text and cursor position.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && !m.input.Focused() {
		return m, nil
	}

	before, pos := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	after := m.input.Value()
	if after == before {
		return m, cmd
	}
	if !m.ctrl.Input(after) {
		m.input.SetValue(before)
		m.input.SetCursor(pos)
	}
	return m, cmd
}

func (m *Model) View() string {
	return m.input.View()
}

// SetPlaceholder sets the text shown while the field is empty.
func (m *Model) SetPlaceholder(s string) {
	m.input.Placeholder = s
}

// SetWidth sets the visible width of the text.
func (m *Model) SetWidth(w int) {
	m.input.Width = w
}

func (m *Model) Width() int { return m.input.Width }

func (m *Model) ID() string                { return m.id }
func (m *Model) Focused() bool             { return m.ctrl.Focused() }
func (m *Model) Display() string           { return m.ctrl.Display() }
func (m *Model) State() controller.State   { return m.ctrl.State() }
func (m *Model) Output() controller.Output { return m.ctrl.Output() }
func (m *Model) Rules() controller.Rules   { return m.rules }
func (m *Model) Cursor() int               { return m.input.Position() }

// Events returns and forgets the events raised since the last call.
func (m *Model) Events() []Event {
	out := m.pending
	m.pending = nil
	return out
}
