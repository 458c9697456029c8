package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/ui/components"
	"github.com/abhisek/sonoprep/internal/ui/layout"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// DashboardScreen shows overall statistics and per-module progress.
type DashboardScreen struct {
	deps    screen.Deps
	stats   progress.Stats
	reports []course.ModuleReport
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen from the current progress.
func New(deps screen.Deps) *DashboardScreen {
	s := &DashboardScreen{deps: deps}
	s.refresh()
	return s
}

func (s *DashboardScreen) refresh() {
	s.stats = s.deps.Progress.Stats()
	s.reports = course.Report(s.deps.Progress, s.deps.Bank)
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		s.refresh()
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	cw := min(width-4, 96)
	var sections []string
	sections = append(sections, s.renderStats(cw))
	sections = append(sections, s.renderModules(cw))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *DashboardScreen) renderStats(cw int) string {
	st := s.stats
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := theme.Subtitle

	cell := func(label, v string) string {
		return dim.Render(label+" ") + value.Render(v)
	}

	final := "not taken"
	if st.FinalExamScore != nil {
		final = fmt.Sprintf("%d%% (%d attempts)", *st.FinalExamScore, st.FinalExamAttempts)
	}
	last := "never"
	if st.LastStudyDate != nil {
		last = st.LastStudyDate.Local().Format("Jan 02, 2006")
	}

	rows := []string{
		strings.Join([]string{
			cell("Level", fmt.Sprint(st.Level)),
			cell("XP", fmt.Sprintf("%d (%d to next)", st.XP, st.XPToNextLevel)),
			cell("Streak", fmt.Sprintf("%d (best %d)", st.CurrentStreak, st.BestStreak)),
		}, "    "),
		strings.Join([]string{
			cell("Answered", fmt.Sprint(st.Answered)),
			cell("Accuracy", fmt.Sprintf("%d%%", st.Accuracy)),
			cell("Study time", formatDuration(st.StudySeconds)),
		}, "    "),
		strings.Join([]string{
			cell("Quizzes", fmt.Sprintf("%d (avg %d%%)", st.QuizzesTaken, st.AverageQuizScore)),
			cell("Final exam", final),
			cell("Topics", fmt.Sprint(st.TopicsCompleted)),
		}, "    "),
		cell("Last studied", last),
	}
	return theme.Card.Width(cw).Render(strings.Join(rows, "\n"))
}

func (s *DashboardScreen) renderModules(cw int) string {
	labelWidth := 0
	for _, r := range s.reports {
		labelWidth = max(labelWidth, lipgloss.Width(r.Module.Name)+3)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Modules"))
	b.WriteString("\n\n")
	for _, r := range s.reports {
		bar := components.NewProgressBar(r.Status.Icon()+" "+r.Module.Name, r.Progress, cw-24)
		bar.LabelWidth = labelWidth
		if r.HasScore {
			bar.Fill = theme.ScoreColor(r.BestScore, course.PassingScore)
		}
		b.WriteString(bar.View())

		score := "  -"
		if r.HasScore {
			score = fmt.Sprintf("%3d%%", r.BestScore)
		}
		b.WriteString(theme.Subtitle.Render("  best " + score))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(secs int) string {
	h, m := secs/3600, (secs%3600)/60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm %02ds", m, secs%60)
}
