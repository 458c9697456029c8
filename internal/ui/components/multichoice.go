package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// MultiChoice is a single-answer question selector. Options can be picked
// with the arrow keys and Enter, or directly by letter.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
	Width        int
}

func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// OptionLabel returns "A", "B", ... for option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.submit(m.Selected)
	default:
		if len(key) == 1 {
			i := int(strings.ToUpper(key)[0]) - 'A'
			if i >= 0 && i < len(m.Options) {
				m.Selected = i
				m.submit(i)
			}
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

func (m MultiChoice) View() string {
	wrap := lipgloss.NewStyle()
	if m.Width > 0 {
		wrap = wrap.Width(m.Width)
	}
	var b strings.Builder
	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)

		style := theme.Unselected
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Submitted && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.Submitted:
			style = theme.Subtitle
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

// IsCorrect reports whether the submitted choice is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
