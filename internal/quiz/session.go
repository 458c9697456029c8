package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/store"
)

// Kind distinguishes a module practice quiz from the final exam.
type Kind string

const (
	KindPractice  Kind = "practice"
	KindFinalExam Kind = "final-exam"
)

// FinalExamSize is the default number of questions drawn for the final exam.
const FinalExamSize = 25

var (
	ErrNoQuestions     = errors.New("no questions available")
	ErrSessionFinished = errors.New("quiz session already finished")
	ErrAlreadyAnswered = errors.New("current question already answered")
	ErrInvalidChoice   = errors.New("choice out of range")
)

// Recorder is the progress store surface a session writes to.
type Recorder interface {
	RecordAnswer(ctx context.Context, a progress.Answer) (progress.Result, error)
	RecordQuizScore(ctx context.Context, quizID string, score int) (progress.Result, error)
	RecordFinalExam(ctx context.Context, score int) (progress.Result, error)
	MarkTopicComplete(ctx context.Context, topicID string) (progress.Result, error)
}

// Outcome is the result of answering one question.
type Outcome struct {
	Question  Question
	Choice    int
	Correct   bool
	TimeSpent int // seconds
	XPEarned  int
	Stats     progress.Stats
	// Warning carries a persistence failure from the progress store.
	Warning error
}

// Summary is produced by Finish.
type Summary struct {
	SessionID string
	Kind      Kind
	QuizID    string
	Questions int
	Answered  int
	Correct   int
	Score     int
	Passed    bool
	XPEarned  int
	Duration  time.Duration
	Outcomes  []Outcome
	Stats     progress.Stats
	Warning   error
}

// Session is one attempt at a quiz. It is not safe for concurrent use.
type Session struct {
	ID     string
	Kind   Kind
	QuizID string

	questions []Question
	idx       int
	answered  bool
	shownAt   time.Time
	startedAt time.Time
	outcomes  []Outcome
	finished  bool

	rec    Recorder
	events store.EventRepo
	now    func() time.Time
	rng    *rand.Rand
	limit  int
}

// Option configures a Session.
type Option func(*Session)

// WithEventRepo records session start and end events.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Session) { s.events = repo }
}

// WithClock overrides the clock used to time answers.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithShuffle randomizes question order using rng.
func WithShuffle(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLimit caps the number of questions. Zero means no cap for practice
// and FinalExamSize for the final exam.
func WithLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

// NewPractice starts a practice quiz over one module's questions.
func NewPractice(ctx context.Context, rec Recorder, bank *Bank, moduleID string, opts ...Option) (*Session, error) {
	if !course.HasModule(moduleID) {
		return nil, fmt.Errorf("start practice: unknown module %q", moduleID)
	}
	return newSession(ctx, rec, KindPractice, moduleID, bank.ByModule(moduleID), opts)
}

// NewFinalExam starts the final exam, drawing questions from every module.
func NewFinalExam(ctx context.Context, rec Recorder, bank *Bank, opts ...Option) (*Session, error) {
	return newSession(ctx, rec, KindFinalExam, course.FinalExamID, bank.All(), append([]Option{func(s *Session) {
		s.limit = FinalExamSize
		if s.rng == nil {
			s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		}
	}}, opts...))
}

func newSession(ctx context.Context, rec Recorder, kind Kind, quizID string, qs []Question, opts []Option) (*Session, error) {
	s := &Session{
		ID:     uuid.New().String(),
		Kind:   kind,
		QuizID: quizID,
		rec:    rec,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("start %s %q: %w", kind, quizID, ErrNoQuestions)
	}
	if s.rng != nil {
		s.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	}
	if s.limit > 0 && len(qs) > s.limit {
		qs = qs[:s.limit]
	}
	s.questions = qs
	s.startedAt = s.now()
	s.shownAt = s.startedAt

	s.appendEvent(ctx, store.StudyEventData{
		SessionID: s.ID,
		Action:    "start",
		Kind:      string(kind),
		QuizID:    quizID,
		Questions: len(qs),
	})
	return s, nil
}

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Position returns the zero-based index of the current question.
func (s *Session) Position() int { return s.idx }

// Current returns the question being shown. ok is false once every
// question has been passed.
func (s *Session) Current() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.questions[s.idx], true
}

// Answered reports whether the current question has been answered.
func (s *Session) Answered() bool { return s.answered }

// Answer grades choice against the current question and records it in
// the progress store. Time spent is measured from when the question was
// shown.
func (s *Session) Answer(ctx context.Context, choice int) (Outcome, error) {
	if s.finished {
		return Outcome{}, ErrSessionFinished
	}
	q, ok := s.Current()
	if !ok {
		return Outcome{}, ErrNoQuestions
	}
	if s.answered {
		return Outcome{}, ErrAlreadyAnswered
	}
	if choice < 0 || choice >= len(q.Options) {
		return Outcome{}, fmt.Errorf("%w: %d (question has %d options)", ErrInvalidChoice, choice, len(q.Options))
	}

	spent := int(s.now().Sub(s.shownAt).Seconds())
	if spent < 0 {
		spent = 0
	}
	o := Outcome{
		Question:  q,
		Choice:    choice,
		Correct:   choice == q.Answer,
		TimeSpent: spent,
	}
	res, err := s.rec.RecordAnswer(ctx, progress.Answer{
		QuestionID: q.ID,
		Correct:    o.Correct,
		TimeSpent:  spent,
		ContextID:  q.ModuleID,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("record answer %q: %w", q.ID, err)
	}
	o.XPEarned = res.XPEarned
	o.Stats = res.Stats
	o.Warning = res.Warning

	s.answered = true
	s.outcomes = append(s.outcomes, o)
	return o, nil
}

// Next moves to the following question and reports whether one exists.
func (s *Session) Next() bool {
	if s.Done() {
		return false
	}
	s.idx++
	s.answered = false
	s.shownAt = s.now()
	return !s.Done()
}

// Done reports whether every question has been passed.
func (s *Session) Done() bool { return s.idx >= len(s.questions) }

// Finish scores the session, records the score in the progress store and
// closes the session. Unanswered questions count as wrong.
func (s *Session) Finish(ctx context.Context) (Summary, error) {
	if s.finished {
		return Summary{}, ErrSessionFinished
	}

	sum := Summary{
		SessionID: s.ID,
		Kind:      s.Kind,
		QuizID:    s.QuizID,
		Questions: len(s.questions),
		Answered:  len(s.outcomes),
		Duration:  s.now().Sub(s.startedAt),
		Outcomes:  append([]Outcome(nil), s.outcomes...),
	}
	for _, o := range s.outcomes {
		if o.Correct {
			sum.Correct++
		}
		sum.XPEarned += o.XPEarned
		if o.Warning != nil {
			sum.Warning = o.Warning
		}
	}
	sum.Score = progress.Percent(sum.Correct, sum.Questions)
	sum.Passed = sum.Score >= course.PassingScore

	var (
		res progress.Result
		err error
	)
	if s.Kind == KindFinalExam {
		res, err = s.rec.RecordFinalExam(ctx, sum.Score)
	} else {
		res, err = s.rec.RecordQuizScore(ctx, s.QuizID, sum.Score)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("record %s score: %w", s.Kind, err)
	}
	s.finished = true
	sum.XPEarned += res.XPEarned
	sum.Stats = res.Stats
	if res.Warning != nil {
		sum.Warning = res.Warning
	}

	// A topic is complete once every question on it in this session was
	// answered correctly.
	for _, topic := range masteredTopics(s.outcomes) {
		res, err := s.rec.MarkTopicComplete(ctx, topic)
		if err != nil {
			return sum, fmt.Errorf("mark topic %q complete: %w", topic, err)
		}
		sum.Stats = res.Stats
		if res.Warning != nil {
			sum.Warning = res.Warning
		}
	}

	s.appendEvent(ctx, store.StudyEventData{
		SessionID:    s.ID,
		Action:       "end",
		Kind:         string(s.Kind),
		QuizID:       s.QuizID,
		Questions:    sum.Questions,
		Correct:      sum.Correct,
		Score:        sum.Score,
		XP:           sum.XPEarned,
		DurationSecs: int(sum.Duration.Seconds()),
	})
	return sum, nil
}

func masteredTopics(outcomes []Outcome) []string {
	var order []string
	allCorrect := make(map[string]bool)
	for _, o := range outcomes {
		t := o.Question.Topic
		if t == "" {
			continue
		}
		if _, seen := allCorrect[t]; !seen {
			order = append(order, t)
			allCorrect[t] = true
		}
		allCorrect[t] = allCorrect[t] && o.Correct
	}
	var done []string
	for _, t := range order {
		if allCorrect[t] {
			done = append(done, t)
		}
	}
	return done
}

func (s *Session) appendEvent(ctx context.Context, data store.StudyEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendStudyEvent(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record study event: %v\n", err)
	}
}
