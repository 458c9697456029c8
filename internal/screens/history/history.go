package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/store"
	"github.com/abhisek/sonoprep/internal/ui/layout"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// historyLimit caps the number of finished quizzes loaded.
const historyLimit = 50

type historyLoadedMsg struct {
	Sessions []store.StudyEventRecord
	Err      error
}

// HistoryScreen lists finished quizzes, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.StudyEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		events, err := repo.QueryStudyEvents(context.Background(), store.QueryOpts{Limit: historyLimit * 2})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: finished(events)}
	}
}

// finished keeps only "end" events, which carry the quiz results.
func finished(events []store.StudyEventRecord) []store.StudyEventRecord {
	var out []store.StudyEventRecord
	for _, e := range events {
		if e.Action == "end" {
			out = append(out, e)
		}
		if len(out) == historyLimit {
			break
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a module and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Local().Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s  %3d%%  %d/%d correct  %s",
			prefix, dateStr, quizName(sess), sess.Score, sess.Correct, sess.Questions, durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			verdict := "not passed"
			if sess.Score >= course.PassingScore {
				verdict = "passed"
			}
			detail := fmt.Sprintf("    %s · +%d XP · %s · session %s",
				sess.Kind, sess.XP, verdict, shortID(sess.SessionID))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.ScoreColor(sess.Score, course.PassingScore)).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func quizName(e store.StudyEventRecord) string {
	if e.QuizID == course.FinalExamID {
		return "Final exam"
	}
	if m, err := course.GetModule(e.QuizID); err == nil {
		return m.Name
	}
	return e.QuizID
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
