package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/decimalinput/internal/database/repository"
	"github.com/jask/decimalinput/internal/engine"
)

func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 64
	}
	lines := []string{titleStyle.Render("Decimal input"), ""}
	for i, p := range a.panes {
		lines = append(lines, a.renderPane(p, i == a.cursor, paneWidth(width)))
	}

	status := a.status
	if a.err != nil {
		status = errorStyle.Render("error: " + a.err.Error())
	} else {
		status = statusStyle.Render(status)
	}
	lines = append(lines, ansi.Truncate(status, width, "…"))
	lines = append(lines, ansi.Truncate(a.help.View(a.keys), width, "…"))
	return strings.Join(lines, "\n")
}

func paneWidth(width int) int {
	if width <= 0 {
		width = 64
	}
	return min(width-2, 60)
}

func innerWidth(paneWidth int) int {
	return max(paneWidth-4, 10)
}

func (a *App) renderPane(p *pane, selected bool, width int) string {
	inner := innerWidth(width)

	rules := p.field.Rules()
	head := headStyle.Render(p.scenario.Name)
	meta := dimStyle.Render(rules.String())
	gap := max(inner-lipgloss.Width(head)-lipgloss.Width(meta), 1)

	fieldLine := p.field.View()
	if !p.field.Focused() {
		fieldLine = "  " + fieldLine
	} else {
		fieldLine = "> " + fieldLine
	}

	body := []string{
		head + strings.Repeat(" ", gap) + meta,
		fieldLine,
		a.renderAlternatives(p),
		valueStyle.Render(fmt.Sprintf("Value: %s", p.value)) + dimStyle.Render(fmt.Sprintf("  (%s)", p.field.State())),
	}
	if len(p.history) > 0 {
		body = append(body, renderHistory(p.history))
	}
	for i, line := range body {
		body[i] = ansi.Truncate(line, inner, "…")
	}

	return paneStyle.
		Width(width - 2).
		BorderForeground(paneBorder(p.valid, selected)).
		Render(strings.Join(body, "\n"))
}

func (a *App) renderAlternatives(p *pane) string {
	if len(p.scenario.Alternatives) == 0 {
		return dimStyle.Render("no alternatives")
	}
	parts := make([]string, 0, len(p.scenario.Alternatives))
	for i, alt := range p.scenario.Alternatives {
		label := engine.FormatPlain(alt)
		if i == p.alt {
			parts = append(parts, altOnStyle.Render(label))
			continue
		}
		parts = append(parts, altStyle.Render(label))
	}
	return dimStyle.Render("alternatives: ") + strings.Join(parts, "  ")
}

func renderHistory(entries []repository.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		v := "?"
		if e.Value != nil {
			v = engine.FormatPlain(*e.Value)
		}
		parts = append(parts, fmt.Sprintf("%s %s", v, e.Kind))
	}
	return dimStyle.Render("recent: " + strings.Join(parts, ", "))
}
