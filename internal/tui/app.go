// Package tui is the demo host: one decimal field per scenario, each with
// the alternatives it can be reset to, a clear action and a readout of the
// value the host currently holds.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decimalinput/internal/controller"
	"github.com/jask/decimalinput/internal/database/repository"
	"github.com/jask/decimalinput/internal/engine"
	"github.com/jask/decimalinput/internal/scenario"
	"github.com/jask/decimalinput/internal/tui/decimalfield"
)

// Journal records what each field held so the next run can start there.
type Journal interface {
	Append(ctx context.Context, e repository.Entry) (repository.Entry, error)
	Latest(ctx context.Context, scenario string) (*repository.Entry, error)
	List(ctx context.Context, scenario string, limit int) ([]repository.Entry, error)
}

// historySize is how many journal entries each pane shows.
const historySize = 3

// Options are the non-scenario inputs of the host.
type Options struct {
	Defaults    scenario.Defaults
	Placeholder string
	Logger      *slog.Logger
}

// App ties the scenario panes together.
type App struct {
	ctx     context.Context
	journal Journal
	log     *slog.Logger
	panes   []*pane
	cursor  int
	editing bool
	keys    keyMap
	help    help.Model
	width   int
	status  string
	err     error
}

// pane is one scenario and the state its host tracks. value and valid are
// what the field last reported, valid starting out true. touched is set
// once the user focused, replaced or cleared the field; the journal
// restore leaves such panes alone.
type pane struct {
	scenario scenario.Scenario
	field    *decimalfield.Model
	initial  engine.Value
	alt      int
	value    engine.Value
	valid    bool
	touched  bool
	history  []repository.Entry
}

// New binds every scenario. A scenario with unusable precision/scale is a
// configuration error and fails the whole host.
func New(ctx context.Context, scenarios []scenario.Scenario, journal Journal, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		ctx:     ctx,
		journal: journal,
		log:     logger,
		keys:    newKeyMap(),
		help:    help.New(),
		width:   64,
	}
	for _, s := range scenarios {
		rules, err := s.Rules(opts.Defaults)
		if err != nil {
			return nil, err
		}
		field := decimalfield.New(s.Name, rules, engine.None())
		field.SetPlaceholder(opts.Placeholder)
		a.panes = append(a.panes, &pane{scenario: s, field: field, alt: -1, valid: true})
		logger.Debug("scenario bound", "scenario", s.Name, "rules", rules.String())
	}
	if len(a.panes) == 0 {
		return nil, fmt.Errorf("no scenarios")
	}
	a.resize(a.width)
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return a.restoreCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(m.Width)
		return a, nil
	case restoredMsg:
		a.restore(m)
		return a, nil
	case historyMsg:
		if p := a.paneByName(m.scenario); p != nil {
			p.history = m.entries
		}
		return a, nil
	case journaledMsg:
		a.log.Debug("journaled", "scenario", m.Scenario, "kind", m.Kind, "id", m.ID)
		return a, a.historyCmd(m.Scenario)
	case errMsg:
		a.err = m.error
		a.log.Error("journal", "err", m.error)
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}

	if a.editing {
		p := a.current()
		var cmd tea.Cmd
		p.field, cmd = p.field.Update(msg)
		return a, tea.Batch(cmd, a.drain(p))
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Next):
		return a, a.move(1)
	case key.Matches(m, a.keys.Prev):
		return a, a.move(-1)
	case key.Matches(m, a.keys.Replace):
		return a, a.replace(a.current())
	case key.Matches(m, a.keys.Clear):
		return a, a.clear(a.current())
	case key.Matches(m, a.keys.Done):
		return a, a.blur()
	case key.Matches(m, a.keys.Edit):
		if a.editing {
			return a, a.blur()
		}
		return a, a.focus()
	}

	if !a.editing {
		if m.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}
	p := a.current()
	var cmd tea.Cmd
	p.field, cmd = p.field.Update(m)
	return a, tea.Batch(cmd, a.drain(p))
}

func (a *App) resize(width int) {
	a.width = width
	a.help.Width = width
	inner := innerWidth(paneWidth(width))
	for _, p := range a.panes {
		p.field.SetWidth(inner - 2)
	}
}

// restore applies the journal to panes the user has not touched yet.
func (a *App) restore(m restoredMsg) {
	n := 0
	for name, v := range m.values {
		p := a.paneByName(name)
		if p == nil || p.touched {
			continue
		}
		a.remount(p, v)
		n++
	}
	for name, entries := range m.history {
		if p := a.paneByName(name); p != nil {
			p.history = entries
		}
	}
	a.status = fmt.Sprintf("restored %d field(s)", n)
}

func (a *App) current() *pane { return a.panes[a.cursor] }

func (a *App) paneByName(name string) *pane {
	for _, p := range a.panes {
		if p.scenario.Name == name {
			return p
		}
	}
	return nil
}

// move blurs the current field and focuses the next one.
func (a *App) move(dir int) tea.Cmd {
	blur := a.blur()
	a.cursor = (a.cursor + dir + len(a.panes)) % len(a.panes)
	return tea.Batch(blur, a.focus())
}

func (a *App) focus() tea.Cmd {
	a.editing = true
	p := a.current()
	p.touched = true
	return p.field.Focus()
}

func (a *App) blur() tea.Cmd {
	if !a.editing {
		return nil
	}
	a.editing = false
	p := a.current()
	p.field.Blur()
	return a.drain(p)
}

// replace remounts p with its next alternative.
func (a *App) replace(p *pane) tea.Cmd {
	alts := p.scenario.Alternatives
	if len(alts) == 0 {
		a.status = p.scenario.Name + ": no alternatives"
		return nil
	}
	p.touched = true
	p.alt = (p.alt + 1) % len(alts)
	v := engine.Some(alts[p.alt])
	a.remount(p, v)
	return a.record(p, repository.KindReplace, v)
}

// clear is host policy: the field remounts empty and the host forgets both
// its value and its invalid flag.
func (a *App) clear(p *pane) tea.Cmd {
	p.touched = true
	p.valid = true
	p.value = engine.None()
	a.remount(p, engine.None())
	a.status = p.scenario.Name + ": cleared"
	return a.record(p, repository.KindClear, engine.None())
}

func (a *App) remount(p *pane, initial engine.Value) {
	if p == a.current() {
		a.editing = false
	}
	p.initial = initial
	p.field.Reset(initial)
	if initial.IsSet() && p.field.State() == controller.StateEmpty {
		a.status = fmt.Sprintf("%s: %s is outside %s", p.scenario.Name, initial, p.field.Rules().Limits())
	} else {
		a.status = fmt.Sprintf("%s: initial value %s", p.scenario.Name, initial)
	}
	a.log.Debug("remount", "scenario", p.scenario.Name, "initial", initial.String(), "state", p.field.State().String())
	a.drain(p)
}

// drain applies the field's events to the host state in order. It returns
// the journal write for a commit, if any.
func (a *App) drain(p *pane) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range p.field.Events() {
		switch e := ev.(type) {
		case decimalfield.ValueChanged:
			p.value = e.Value
		case decimalfield.ValidityChanged:
			p.valid = e.Valid
		case decimalfield.Committed:
			a.log.Debug("commit", "scenario", p.scenario.Name, "value", e.Value.String(), "valid", p.valid)
			cmds = append(cmds, a.record(p, repository.KindCommit, e.Value))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) record(p *pane, kind string, v engine.Value) tea.Cmd {
	if a.journal == nil {
		return nil
	}
	entry := repository.Entry{Scenario: p.scenario.Name, Kind: kind, Valid: p.valid}
	if n, ok := v.Float(); ok {
		entry.Value = &n
	}
	return func() tea.Msg {
		saved, err := a.journal.Append(a.ctx, entry)
		if err != nil {
			return errMsg{err}
		}
		return journaledMsg(saved)
	}
}

// restoreCmd loads the last journaled value and recent history of every
// scenario. Scenarios whose last entry is empty stay empty.
func (a *App) restoreCmd() tea.Cmd {
	if a.journal == nil {
		return nil
	}
	names := make([]string, 0, len(a.panes))
	for _, p := range a.panes {
		names = append(names, p.scenario.Name)
	}
	return func() tea.Msg {
		out := restoredMsg{
			values:  map[string]engine.Value{},
			history: map[string][]repository.Entry{},
		}
		for _, name := range names {
			e, err := a.journal.Latest(a.ctx, name)
			if err != nil {
				return errMsg{fmt.Errorf("restore %s: %w", name, err)}
			}
			entries, err := a.journal.List(a.ctx, name, historySize)
			if err != nil {
				return errMsg{fmt.Errorf("history %s: %w", name, err)}
			}
			out.history[name] = entries
			if e == nil || e.Value == nil {
				continue
			}
			out.values[name] = engine.Some(*e.Value)
		}
		return out
	}
}

// historyCmd reloads the recent entries of one scenario.
func (a *App) historyCmd(name string) tea.Cmd {
	if a.journal == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := a.journal.List(a.ctx, name, historySize)
		if err != nil {
			return errMsg{fmt.Errorf("history %s: %w", name, err)}
		}
		return historyMsg{scenario: name, entries: entries}
	}
}

type restoredMsg struct {
	values  map[string]engine.Value
	history map[string][]repository.Entry
}

type historyMsg struct {
	scenario string
	entries  []repository.Entry
}

type journaledMsg repository.Entry

type errMsg struct{ error }
