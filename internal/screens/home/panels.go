package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

const titleFull = ` ███████╗ ██████╗ ███╗   ██╗ ██████╗ ██████╗ ██████╗ ███████╗██████╗
 ██╔════╝██╔═══██╗████╗  ██║██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗
 ███████╗██║   ██║██╔██╗ ██║██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝
 ╚════██║██║   ██║██║╚██╗██║██║   ██║██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ███████║╚██████╔╝██║ ╚████║╚██████╔╝██║     ██║  ██║███████╗██║
 ╚══════╝ ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝ ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const titleCompact = "S O N O P R E P"

// titleMinWidth is the narrowest content width that fits titleFull.
const titleMinWidth = 72

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact || cw < titleMinWidth {
		art = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
}

// renderStatsBar shows level, XP, streak and accuracy in a bordered box.
func renderStatsBar(st progress.Stats, cw int, compact bool) string {
	level := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	xp := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			level.Render(fmt.Sprintf("Lv%d", st.Level)),
			xp.Render(fmt.Sprintf("%dXP", st.XP)),
			streak.Render(fmt.Sprintf("⚡%d", st.CurrentStreak)),
			dim.Render(fmt.Sprintf("%d%%", st.Accuracy)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			level.Render(fmt.Sprintf("LEVEL %d", st.Level)),
			xp.Render(fmt.Sprintf("◆ %d XP", st.XP)),
			streak.Render(fmt.Sprintf("⚡ STREAK %d", st.CurrentStreak)),
			dim.Render(fmt.Sprintf("%d%% ACCURACY", st.Accuracy)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when compact.
func renderMenu(labels []string, selected, cw int, compact bool) string {
	var lines []string
	for i, label := range labels {
		lines = append(lines, menuButton(label, i == selected, compact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func menuButton(label string, selected, compact bool) string {
	if compact {
		if selected {
			return lipgloss.NewStyle().Foreground(theme.BgCard).Background(theme.Primary).Bold(true).
				Render(" ▸ " + label + " ")
		}
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
	}

	style := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if selected {
		return style.Bold(true).
			Foreground(theme.BgCard).
			Background(theme.Primary).
			BorderForeground(theme.Primary).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}

// renderNote renders a dim one-line notice.
func renderNote(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox centers the mascot in the content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(variant))
}
