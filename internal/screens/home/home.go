package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/screens/dashboard"
	"github.com/abhisek/sonoprep/internal/screens/history"
	"github.com/abhisek/sonoprep/internal/screens/modules"
	quizscreen "github.com/abhisek/sonoprep/internal/screens/quiz"
	"github.com/abhisek/sonoprep/internal/screens/tutor"
	"github.com/abhisek/sonoprep/internal/ui/components"
)

// UpdateAvailableMsg tells the home screen a newer release exists.
type UpdateAvailableMsg struct {
	Latest string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       screen.Deps
	menu       components.Menu
	labels     []string
	updateNote string
	now        func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	labels := []string{"PRACTICE", "FINAL EXAM", "DASHBOARD", "TUTOR", "HISTORY", "EXIT"}
	items := []components.MenuItem{
		{Label: labels[0], Action: push(func() screen.Screen { return modules.New(deps) })},
		{Label: labels[1], Action: push(func() screen.Screen { return quizscreen.NewFinalExam(deps) })},
		{Label: labels[2], Action: push(func() screen.Screen { return dashboard.New(deps) })},
		{Label: labels[3], Action: push(func() screen.Screen { return tutor.New(deps) })},
		{Label: labels[4], Action: push(func() screen.Screen { return history.New(deps.Events) })},
		{Label: labels[5], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps:   deps,
		menu:   components.NewMenu(items),
		labels: labels,
		now:    time.Now,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(UpdateAvailableMsg); ok {
		h.updateNote = fmt.Sprintf("New version %s available (sonoprep update)", m.Latest)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	termHeight := height + 8
	compact := termHeight < 34 || width < 100
	cw := contentWidth(width)

	stats := h.deps.Progress.Stats()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(stats), cw))
	}
	sections = append(sections, renderStatsBar(stats, cw, compact))
	if rec := h.recommendation(); rec != "" {
		sections = append(sections, renderNote(rec, cw))
	}
	sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw, compact))
	if h.deps.Tutor == nil {
		sections = append(sections, renderNote("Tutor is offline: set SONOPREP_KB_ENDPOINT or an LLM API key (see sonoprep --help)", cw))
	}
	if h.updateNote != "" {
		sections = append(sections, renderNote(h.updateNote, cw))
	}

	return strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// recommendation names the next module to study.
func (h *HomeScreen) recommendation() string {
	reports := course.Report(h.deps.Progress, h.deps.Bank)
	if rec, ok := course.Recommended(reports); ok {
		return fmt.Sprintf("Up next: %s (%d%% answered)", rec.Module.Name, rec.Progress)
	}
	for _, r := range reports {
		if r.Status != course.StatusPassed {
			return ""
		}
	}
	return "Every module passed. Time for the final exam!"
}

func (h *HomeScreen) mascotVariant(st progress.Stats) MascotVariant {
	if st.FinalExamScore != nil && *st.FinalExamScore >= course.PassingScore {
		return MascotCelebrating
	}
	if st.LastStudyDate != nil {
		y1, m1, d1 := st.LastStudyDate.Local().Date()
		y2, m2, d2 := h.now().Local().Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return MascotAlert
		}
	}
	return MascotIdle
}
