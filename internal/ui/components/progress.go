package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a 0-100 percentage.
type ProgressBar struct {
	Label      string
	LabelWidth int // pads Label so stacked bars line up
	Percent    int
	Width      int
	Fill       color.Color
}

func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width, Fill: theme.Secondary}
}

func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(max(p.LabelWidth, lipgloss.Width(p.Label))).
			Render(p.Label) + "  "
	}
	pct := fmt.Sprintf(" %3d%%", p.Percent)

	barWidth := max(p.Width-lipgloss.Width(label)-len(pct), 4)
	filled := min(max(barWidth*p.Percent/100, 0), barWidth)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	return label +
		lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)) +
		theme.Subtitle.Render(pct)
}
