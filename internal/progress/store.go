package progress

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Answer is one submitted answer.
type Answer struct {
	QuestionID string `validate:"id"`
	Correct    bool
	TimeSpent  int    `validate:"gte=0"` // seconds
	ContextID  string `validate:"id"`    // section or module the time is booked to
}

type quizScoreInput struct {
	QuizID string `validate:"id"`
	Score  int    `validate:"gte=0,lte=100"`
}

type finalExamInput struct {
	Score int `validate:"gte=0,lte=100"`
}

type topicInput struct {
	TopicID string `validate:"id"`
}

// Result reports the outcome of a mutating call.
type Result struct {
	// Applied is false when the call changed nothing, e.g. a repeated answer.
	Applied bool

	// XPEarned is the XP added by this call.
	XPEarned int

	// Stats are the derived statistics after the call.
	Stats Stats

	// Warning is a *PersistenceError when the durable write failed.
	// The in-memory state still holds the mutation.
	Warning error
}

// Stats is a summary of derived statistics.
type Stats struct {
	Answered          int
	Correct           int
	Accuracy          int
	CurrentStreak     int
	BestStreak        int
	XP                int
	Level             int
	XPToNextLevel     int
	StudySeconds      int
	QuizzesTaken      int
	AverageQuizScore  int
	FinalExamScore    *int
	FinalExamAttempts int
	TopicsCompleted   int
	LastStudyDate     *time.Time
}

// Store is the single owner of progress state. It is not safe for
// concurrent use; callers drive it from one event loop.
type Store struct {
	state     Progress
	persister Persister
	validate  *validator.Validate
	now       func() time.Time

	// loadFailed holds back writes until Reset so a store that could not
	// read the saved document never overwrites it.
	loadFailed bool
}

// errNotLoaded is the save warning while loadFailed is set.
var errNotLoaded = errors.New("saved progress could not be loaded; changes are kept in memory only")

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for LastStudyDate.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads progress from persister and returns a ready Store. A nil
// persister keeps state in memory only.
//
// The returned Store is always usable. A non-nil error is a
// *PersistenceError from the initial load, in which case the store starts
// empty and does not save until Reset.
func New(ctx context.Context, persister Persister, opts ...Option) (*Store, error) {
	s := &Store{
		state:     Empty(),
		persister: persister,
		validate:  newValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if persister == nil {
		return s, nil
	}
	doc, err := persister.Load(ctx)
	if err != nil {
		s.loadFailed = true
		return s, &PersistenceError{Op: "load", Err: err}
	}
	if doc != nil {
		s.state = doc.Progress()
	}
	return s, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	// "id" rejects empty and whitespace-only identifiers.
	_ = v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// RecordAnswer scores one answer. Answering a question that is already in
// QuestionsAnswered is a no-op.
func (s *Store) RecordAnswer(ctx context.Context, a Answer) (Result, error) {
	if err := s.check(a); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	if s.state.QuestionsAnswered.Has(a.QuestionID) {
		return Result{Stats: s.Stats()}, nil
	}

	st := &s.state
	st.QuestionsAnswered.Add(a.QuestionID)
	if a.Correct {
		st.CorrectAnswers.Add(a.QuestionID)
		st.Streaks.Current++
		st.Streaks.Best = max(st.Streaks.Best, st.Streaks.Current)
	} else {
		st.Streaks.Current = 0
	}
	st.StudyTime[a.ContextID] += a.TimeSpent

	xp := XPForAnswer(a.Correct, a.TimeSpent, st.Streaks.Current)
	st.XP += xp

	return s.commit(ctx, xp), nil
}

// RecordQuizScore keeps the higher of the stored and new score for quizID.
func (s *Store) RecordQuizScore(ctx context.Context, quizID string, score int) (Result, error) {
	if err := s.check(quizScoreInput{QuizID: quizID, Score: score}); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	s.state.QuizScores[quizID] = max(s.state.QuizScores[quizID], score)
	return s.commit(ctx, 0), nil
}

// RecordFinalExam keeps the best final exam score and counts the attempt.
func (s *Store) RecordFinalExam(ctx context.Context, score int) (Result, error) {
	if err := s.check(finalExamInput{Score: score}); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	best := score
	if s.state.FinalExamScore != nil {
		best = max(best, *s.state.FinalExamScore)
	}
	s.state.FinalExamScore = &best
	s.state.FinalExamAttempts++
	return s.commit(ctx, 0), nil
}

// MarkTopicComplete adds topicID to the completed topics.
func (s *Store) MarkTopicComplete(ctx context.Context, topicID string) (Result, error) {
	if err := s.check(topicInput{TopicID: topicID}); err != nil {
		return Result{Stats: s.Stats()}, err
	}
	if !s.state.CompletedTopics.Add(topicID) {
		return Result{Stats: s.Stats()}, nil
	}
	return s.commit(ctx, 0), nil
}

// Reset discards all progress and persists the empty default. It is the
// only call that overwrites a document the store failed to load.
func (s *Store) Reset(ctx context.Context) (Result, error) {
	s.state = Empty()
	s.loadFailed = false
	res := Result{Applied: true, Stats: s.Stats()}
	res.Warning = s.save(ctx)
	return res, nil
}

// commit stamps the study date and writes the state through.
func (s *Store) commit(ctx context.Context, xp int) Result {
	now := s.now().UTC()
	s.state.LastStudyDate = &now
	return Result{
		Applied:  true,
		XPEarned: xp,
		Stats:    s.Stats(),
		Warning:  s.save(ctx),
	}
}

func (s *Store) save(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	if s.loadFailed {
		return &PersistenceError{Op: "save", Err: errNotLoaded}
	}
	if err := s.persister.Save(ctx, NewDocument(s.state)); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &InputError{Field: fe.Field(), Reason: reason(fe)}
	}
	return &InputError{Field: "input", Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "id":
		return "must not be empty"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Progress {
	return s.state.Clone()
}

// IsAnswered reports whether questionID has been answered.
func (s *Store) IsAnswered(questionID string) bool {
	return s.state.QuestionsAnswered.Has(questionID)
}

// IsCorrect reports whether questionID was answered correctly.
func (s *Store) IsCorrect(questionID string) bool {
	return s.state.CorrectAnswers.Has(questionID)
}

// IsTopicComplete reports whether topicID is marked complete.
func (s *Store) IsTopicComplete(topicID string) bool {
	return s.state.CompletedTopics.Has(topicID)
}

// QuizScore returns the best score for quizID.
func (s *Store) QuizScore(quizID string) (int, bool) {
	v, ok := s.state.QuizScores[quizID]
	return v, ok
}

// StudyTime returns the seconds booked to contextID.
func (s *Store) StudyTime(contextID string) int {
	return s.state.StudyTime[contextID]
}

// Accuracy is the percentage of answered questions among ids that were
// answered correctly.
func (s *Store) Accuracy(ids []string) int {
	var answered, correct int
	for id := range NewIDSet(ids...) {
		if !s.state.QuestionsAnswered.Has(id) {
			continue
		}
		answered++
		if s.state.CorrectAnswers.Has(id) {
			correct++
		}
	}
	return Percent(correct, answered)
}

// SectionProgress is the percentage of ids that have been answered.
func (s *Store) SectionProgress(ids []string) int {
	set := NewIDSet(ids...)
	var answered int
	for id := range set {
		if s.state.QuestionsAnswered.Has(id) {
			answered++
		}
	}
	return Percent(answered, len(set))
}

// OverallAccuracy is the accuracy over every answered question.
func (s *Store) OverallAccuracy() int {
	return Percent(len(s.state.CorrectAnswers), len(s.state.QuestionsAnswered))
}

// Stats computes the derived statistics.
func (s *Store) Stats() Stats {
	st := s.state
	var studySecs, scoreSum int
	for _, secs := range st.StudyTime {
		studySecs += secs
	}
	for _, score := range st.QuizScores {
		scoreSum += score
	}

	stats := Stats{
		Answered:          len(st.QuestionsAnswered),
		Correct:           len(st.CorrectAnswers),
		Accuracy:          s.OverallAccuracy(),
		CurrentStreak:     st.Streaks.Current,
		BestStreak:        st.Streaks.Best,
		XP:                st.XP,
		Level:             LevelFor(st.XP),
		XPToNextLevel:     XPToNextLevel(st.XP),
		StudySeconds:      studySecs,
		QuizzesTaken:      len(st.QuizScores),
		AverageQuizScore:  Percent(scoreSum, 100*len(st.QuizScores)),
		FinalExamAttempts: st.FinalExamAttempts,
		TopicsCompleted:   len(st.CompletedTopics),
	}
	if st.FinalExamScore != nil {
		v := *st.FinalExamScore
		stats.FinalExamScore = &v
	}
	if st.LastStudyDate != nil {
		v := *st.LastStudyDate
		stats.LastStudyDate = &v
	}
	return stats
}
