package modules

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	quizscreen "github.com/abhisek/sonoprep/internal/screens/quiz"
	"github.com/abhisek/sonoprep/internal/ui/layout"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// ModulesScreen lists the course modules with their status and starts a
// practice quiz for the selected one.
type ModulesScreen struct {
	deps     screen.Deps
	reports  []course.ModuleReport
	selected int
}

var _ screen.Screen = (*ModulesScreen)(nil)
var _ screen.KeyHintProvider = (*ModulesScreen)(nil)

// New creates a ModulesScreen with the recommended module preselected.
func New(deps screen.Deps) *ModulesScreen {
	s := &ModulesScreen{deps: deps}
	s.refresh()
	if rec, ok := course.Recommended(s.reports); ok {
		for i, r := range s.reports {
			if r.Module.ID == rec.Module.ID {
				s.selected = i
			}
		}
	}
	return s
}

func (s *ModulesScreen) refresh() {
	s.reports = course.Report(s.deps.Progress, s.deps.Bank)
}

func (s *ModulesScreen) Init() tea.Cmd {
	return nil
}

func (s *ModulesScreen) Title() string {
	return "Modules"
}

func (s *ModulesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ModulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumedMsg:
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.reports)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.reports) {
				return s, nil
			}
			id := s.reports[s.selected].Module.ID
			deps := s.deps
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.NewPractice(deps, id)}
			}
		}
	}
	return s, nil
}

func (s *ModulesScreen) View(width, height int) string {
	if len(s.reports) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  No modules available.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.reports {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		} else if r.Status == course.StatusLocked {
			style = style.Foreground(theme.TextDim)
		}

		line := fmt.Sprintf("%s%s %-34s %3d%% answered  %d questions", prefix, r.Status.Icon(), r.Module.Name, r.Progress, r.Questions)
		if r.HasScore {
			line += fmt.Sprintf("  best %d%%", r.BestScore)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderDetail(width))
	return b.String()
}

// renderDetail describes the selected module and, when locked, which
// prerequisites remain.
func (s *ModulesScreen) renderDetail(width int) string {
	r := s.reports[s.selected]
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(r.Module.Description))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d/%d topics complete · accuracy %d%%",
		r.Status.Label(), r.TopicsDone, r.TopicsTotal, r.Accuracy)))

	if r.Status == course.StatusLocked {
		var names []string
		for _, p := range course.Prerequisites(r.Module.ID) {
			names = append(names, p.Name)
		}
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(fmt.Sprintf(
			"Recommended first: %s (score %d%% to pass). You can still practice.",
			strings.Join(names, ", "), course.PassingScore)))
	}

	return theme.Card.Width(min(width-4, 90)).Render(b.String())
}
