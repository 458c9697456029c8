package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/ui/components"
	"github.com/abhisek/sonoprep/internal/ui/layout"
	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// askTimeout bounds one knowledge-base round trip from the UI.
const askTimeout = 45 * time.Second

type replyMsg struct {
	Turn kb.Turn
	Err  error
}

// TutorScreen is a chat with the knowledge base.
type TutorScreen struct {
	tutor      *kb.Tutor
	input      components.TextInput
	pending    bool
	suggestion int
	errMsg     string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates a TutorScreen over deps.Tutor. A nil tutor answers every
// question with the offline fallback.
func New(deps screen.Deps) *TutorScreen {
	t := deps.Tutor
	if t == nil {
		t = kb.NewTutor(nil)
	}
	return &TutorScreen{
		tutor: t,
		input: components.NewTextInput("Ask about ultrasound physics...", 500),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string {
	return "Tutor"
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Tab", Description: "Suggest"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.ask()
		case "tab":
			s.input.Model.SetValue(kb.Suggestions[s.suggestion%len(kb.Suggestions)])
			s.input.Model.CursorEnd()
			s.suggestion++
			return s, nil
		case "ctrl+l":
			s.tutor.Clear()
			s.errMsg = ""
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// ask sends the input to the tutor in the background. The transcript is
// updated by the tutor itself, so the reply message only clears the
// pending state.
func (s *TutorScreen) ask() tea.Cmd {
	question := s.input.Value()
	if question == "" || s.pending {
		return nil
	}
	s.input.Reset()
	s.pending = true
	s.errMsg = ""

	t := s.tutor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		turn, err := t.Ask(ctx, question)
		return replyMsg{Turn: turn, Err: err}
	}
}

func (s *TutorScreen) View(width, height int) string {
	cw := max(min(width-4, 100), 20)
	s.input.SetWidth(cw - 4)

	inputBox := theme.Card.Width(cw).Render(s.input.View())
	status := ""
	switch {
	case s.pending:
		status = theme.Hint.Render("Thinking...")
	case s.errMsg != "":
		status = lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	}

	transcriptHeight := max(height-lipgloss.Height(inputBox)-3, 1)
	transcript := s.renderTranscript(cw, transcriptHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		transcript,
		status,
		inputBox,
	)
}

// renderTranscript renders the conversation, keeping the newest lines
// when it does not fit.
func (s *TutorScreen) renderTranscript(cw, height int) string {
	turns := s.tutor.Transcript()
	if len(turns) == 0 {
		var b strings.Builder
		b.WriteString(theme.Subtitle.Render("Ask anything about the SPI exam topics. Try:"))
		b.WriteString("\n")
		for _, q := range kb.Suggestions {
			b.WriteString(theme.Hint.Render("  • " + q))
			b.WriteString("\n")
		}
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(cw)
	var lines []string
	for _, t := range turns {
		var block string
		switch t.Speaker {
		case kb.SpeakerStudent:
			block = wrap.Foreground(theme.Primary).Bold(true).Render("You: " + t.Text)
		default:
			style := wrap.Foreground(theme.Text)
			if t.Fallback {
				style = style.Foreground(theme.Accent)
			}
			block = style.Render("Tutor: " + t.Text)
			if len(t.Sources) > 0 {
				block += "\n" + theme.Subtitle.Width(cw).Render(fmt.Sprintf("Sources: %s", strings.Join(t.Sources, ", ")))
			}
		}
		lines = append(lines, strings.Split(block, "\n")...)
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}
