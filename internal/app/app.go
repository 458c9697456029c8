package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/release"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/screens/home"
	"github.com/abhisek/sonoprep/internal/ui/layout"
)

// updateCheckTimeout bounds the background release check at startup.
const updateCheckTimeout = 5 * time.Second

// Options are the dependencies the TUI runs with.
type Options struct {
	screen.Deps

	// Version is the running build's version, used for the update check.
	Version string

	// Checker, when set, checks for a newer release in the background.
	Checker *release.Checker
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Deps)),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.opts.Checker == nil {
		return nil
	}
	checker, version := m.opts.Checker, m.opts.Version
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		res, err := checker.Check(ctx, &release.CheckInput{Version: version})
		if err != nil || !res.UpdateAvailable {
			return nil
		}
		return home.UpdateAvailableMsg{Latest: res.LatestVersion}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame: header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.opts.Progress == nil {
		return layout.HeaderStats{Level: 1}
	}
	st := m.opts.Progress.Stats()
	return layout.HeaderStats{XP: st.XP, Level: st.Level, Streak: st.CurrentStreak}
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Progress == nil || opts.Bank == nil {
		return fmt.Errorf("run app: progress store and question bank are required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
