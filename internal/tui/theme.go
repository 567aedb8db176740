package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dimStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	valueStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	altStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	altOnStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Underline(true)
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// paneBorder picks the frame colour: invalid beats focus.
func paneBorder(valid, selected bool) lipgloss.Color {
	switch {
	case !valid:
		return colorError
	case selected:
		return colorFocus
	default:
		return colorSurface1
	}
}
