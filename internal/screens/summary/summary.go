package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/ui/layout"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// SummaryScreen shows the result of a finished quiz.
type SummaryScreen struct {
	summary quiz.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for sum.
func New(sum quiz.Summary) *SummaryScreen {
	return &SummaryScreen{summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	if s.summary.Kind == quiz.KindFinalExam {
		return "Final Exam Results"
	}
	return "Quiz Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "H", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text))
	}

	var b strings.Builder
	b.WriteString("\n")

	headline := "Quiz complete"
	if sum.Kind == quiz.KindFinalExam {
		headline = "Final exam complete"
	}
	b.WriteString(center(theme.Title, headline))
	b.WriteString("\n\n")

	verdict := "Not passed yet. Review and try again."
	if sum.Passed {
		verdict = "Passed!"
	}
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ScoreColor(sum.Score, course.PassingScore)).Bold(true)
	b.WriteString(center(scoreStyle, fmt.Sprintf("%d%%  %s", sum.Score, verdict)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Body, fmt.Sprintf(
		"Correct: %d/%d        XP earned: +%d        Time: %d:%02d",
		sum.Correct, sum.Questions, sum.XPEarned, mins, secs)))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, fmt.Sprintf(
		"Level %d  ·  %d XP to next level  ·  best streak %d",
		sum.Stats.Level, sum.Stats.XPToNextLevel, sum.Stats.BestStreak)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(center(theme.Subtitle, "Questions"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	promptWidth := max(min(width-16, 56), 10)
	for _, o := range sum.Outcomes {
		mark, style := "✗", theme.Incorrect
		if o.Correct {
			mark, style = "✓", theme.Correct
		}
		line := fmt.Sprintf("%s  %s", mark, truncate(o.Question.Prompt, promptWidth))
		b.WriteString(center(style, line))
		b.WriteString("\n")
	}
	if unanswered := sum.Questions - sum.Answered; unanswered > 0 {
		b.WriteString(center(theme.Hint, fmt.Sprintf("%d unanswered, counted as incorrect", unanswered)))
		b.WriteString("\n")
	}

	if sum.Warning != nil {
		b.WriteString("\n")
		b.WriteString(center(theme.Warning, "Progress could not be saved: "+sum.Warning.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
