package quiz

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/screens/summary"
	"github.com/abhisek/sonoprep/internal/ui/components"
	"github.com/abhisek/sonoprep/internal/ui/layout"
)

// QuizScreen runs one practice quiz or the final exam.
type QuizScreen struct {
	deps     screen.Deps
	kind     qz.Kind
	moduleID string

	session *qz.Session
	choice  components.MultiChoice
	outcome *qz.Outcome
	next    components.Button

	confirmQuit bool
	speaking    bool
	notice      string
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// NewPractice starts a practice quiz over moduleID.
func NewPractice(deps screen.Deps, moduleID string) *QuizScreen {
	s := &QuizScreen{deps: deps, kind: qz.KindPractice, moduleID: moduleID}
	s.start(func(ctx context.Context, opts []qz.Option) (*qz.Session, error) {
		return qz.NewPractice(ctx, deps.Progress, deps.Bank, moduleID, opts...)
	})
	return s
}

// NewFinalExam starts the final exam.
func NewFinalExam(deps screen.Deps) *QuizScreen {
	s := &QuizScreen{deps: deps, kind: qz.KindFinalExam}
	s.start(func(ctx context.Context, opts []qz.Option) (*qz.Session, error) {
		return qz.NewFinalExam(ctx, deps.Progress, deps.Bank, opts...)
	})
	return s
}

func (s *QuizScreen) start(open func(context.Context, []qz.Option) (*qz.Session, error)) {
	if s.deps.Progress == nil || s.deps.Bank == nil {
		s.errMsg = "progress store is not available"
		return
	}
	var opts []qz.Option
	if s.deps.Events != nil {
		opts = append(opts, qz.WithEventRepo(s.deps.Events))
	}
	sess, err := open(context.Background(), opts)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.session = sess
	s.loadQuestion()
}

// loadQuestion resets the answer widgets for the current question.
func (s *QuizScreen) loadQuestion() {
	q, ok := s.session.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Answer)
	s.outcome = nil
	s.next = components.NewButton(s.nextLabel(), true, s.advance)
}

func (s *QuizScreen) nextLabel() string {
	if s.session.Position() >= s.session.Len()-1 {
		return "See results"
	}
	return "Next question"
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	if s.kind == qz.KindFinalExam {
		return "Final Exam"
	}
	return "Practice Quiz"
}

// HandlesBack keeps Esc inside the screen while a quiz is running so
// the learner is asked before leaving.
func (s *QuizScreen) HandlesBack() bool {
	return s.session != nil && s.errMsg == ""
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.next.Label},
			{Key: "R", Description: "Read explanation"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "R", Description: "Read aloud"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case speechDoneMsg:
		s.speaking = false
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.notice = "Read-aloud failed: " + msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.stopSpeech()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "r", "R":
		return s, s.readAloud()
	case "s", "S":
		s.stopSpeech()
		return s, nil
	}

	if s.outcome != nil {
		var cmd tea.Cmd
		s.next, cmd = s.next.Update(msg)
		return s, cmd
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submitAnswer()
	}
	return s, nil
}

// submitAnswer records the chosen option and switches to feedback.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	o, err := s.session.Answer(context.Background(), s.choice.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.outcome = &o
	if o.Warning != nil {
		s.notice = "Progress could not be saved: " + o.Warning.Error()
	}
	return s, nil
}

// advance moves to the next question, or finishes the quiz and shows the
// summary in place of this screen.
func (s *QuizScreen) advance() tea.Cmd {
	if s.session.Next() {
		s.loadQuestion()
		return nil
	}
	s.stopSpeech()
	sum, err := s.session.Finish(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// readAloud speaks the current question, or the explanation once answered,
// in a background command.
func (s *QuizScreen) readAloud() tea.Cmd {
	if s.deps.Speech == nil {
		s.notice = "Read-aloud is unavailable: no speech engine found."
		return nil
	}
	if s.speaking {
		return nil
	}
	q, ok := s.session.Current()
	if !ok {
		return nil
	}

	text := q.Prompt
	for i, opt := range q.Options {
		text += fmt.Sprintf(". %s: %s", components.OptionLabel(i), opt)
	}
	if s.outcome != nil {
		text = q.Explanation
	}

	if s.deps.Banner != nil {
		if tip, err := s.deps.Banner.ShowOnce(context.Background()); err == nil && tip != "" {
			s.notice = tip
		}
	}

	s.speaking = true
	ctrl := s.deps.Speech
	return func() tea.Msg {
		return speechDoneMsg{Err: ctrl.Speak(context.Background(), text)}
	}
}

func (s *QuizScreen) stopSpeech() {
	if s.deps.Speech != nil && s.speaking {
		_ = s.deps.Speech.Stop()
	}
}
