package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/diagrams"
	qz "github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// maxDiagrams caps the reference links shown under an explanation.
const maxDiagrams = 2

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not start quiz: %s\n\nPress any key to go back.", s.errMsg))
	}
	if s.confirmQuit {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Text).
			Render("\n\nLeave this quiz?\n\nAnswers so far are kept, but no quiz score is recorded.\n\n(y/n)")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	s.choice.Width = max(width-8, 20)
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View()))
	b.WriteString("\n")

	if s.outcome != nil {
		b.WriteString(s.renderFeedback(width))
	}

	if s.speaking {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Reading aloud… press S to stop"))
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render("  " + s.notice))
	}
	return b.String()
}

// renderInfoLine shows the module on the left and position and streak on
// the right.
func (s *QuizScreen) renderInfoLine(width int) string {
	moduleID := s.moduleID
	if q, ok := s.session.Current(); ok {
		moduleID = q.ModuleID
	}
	label := ""
	if m, err := course.GetModule(moduleID); err == nil {
		label = m.Name
	}
	if s.kind == qz.KindFinalExam {
		label = "Final exam · " + label
	}

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + label)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"Q %d/%d   streak %d",
		s.session.Position()+1, s.session.Len(), s.deps.Progress.Stats().CurrentStreak))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (s *QuizScreen) renderFeedback(width int) string {
	o := s.outcome
	var b strings.Builder

	if o.Correct {
		b.WriteString(theme.Correct.Render("  Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  Not quite. The answer is %s.",
			optionText(o.Question.Options, o.Question.Answer))))
	}
	if o.XPEarned > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("   +%d XP", o.XPEarned)))
	}
	b.WriteString("\n\n")

	if o.Question.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(max(width-8, 20)).
			PaddingLeft(2).
			Foreground(theme.Text).
			Render(o.Question.Explanation))
		b.WriteString("\n\n")
	}

	found := diagrams.Find(o.Question.Prompt, o.Question.Explanation)
	if len(found) > maxDiagrams {
		found = found[:maxDiagrams]
	}
	for _, d := range found {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  Diagram: %s  %s", d.Title, d.URL)))
		b.WriteString("\n")
	}
	b.WriteString("\n  ")
	b.WriteString(s.next.View())
	b.WriteString("\n")
	return b.String()
}

func optionText(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return "?"
	}
	return fmt.Sprintf("%c) %s", 'A'+i, options[i])
}
