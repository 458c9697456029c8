package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func newStore(t *testing.T) *progress.Store {
	return newStoreWith(t, &progress.MemoryPersister{})
}

func newStoreWith(t *testing.T, p progress.Persister) *progress.Store {
	t.Helper()
	s, err := progress.New(context.Background(), p)
	require.NoError(t, err)
	return s
}

func testBank(t *testing.T) *Bank {
	t.Helper()
	b, err := NewBank([]Question{
		{ID: "w1", ModuleID: "waves", Topic: "waves.wavelength", Prompt: "p1", Options: []string{"a", "b"}, Answer: 0},
		{ID: "w2", ModuleID: "waves", Topic: "waves.wavelength", Prompt: "p2", Options: []string{"a", "b"}, Answer: 1},
		{ID: "w3", ModuleID: "waves", Topic: "waves.decibels", Prompt: "p3", Options: []string{"a", "b", "c"}, Answer: 2},
		{ID: "d1", ModuleID: "doppler", Prompt: "p4", Options: []string{"a", "b"}, Answer: 0},
	})
	require.NoError(t, err)
	return b
}

func TestPracticeSession_FullRun(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)
	clock := newClock()

	s, err := NewPractice(ctx, ps, testBank(t), "waves", WithClock(clock.now))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.NotEmpty(t, s.ID)

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "w1", q.ID)

	clock.advance(4 * time.Second)
	o, err := s.Answer(ctx, 0)
	require.NoError(t, err)
	assert.True(t, o.Correct)
	assert.Equal(t, 4, o.TimeSpent)
	assert.Equal(t, progress.BaseXP+progress.SpeedBonusXP, o.XPEarned)

	_, err = s.Answer(ctx, 1)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	require.True(t, s.Next())
	clock.advance(20 * time.Second)
	o, err = s.Answer(ctx, 0)
	require.NoError(t, err)
	assert.False(t, o.Correct)
	assert.Equal(t, 0, o.XPEarned)

	require.True(t, s.Next())
	_, err = s.Answer(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	clock.advance(2 * time.Second)
	_, err = s.Answer(ctx, 2)
	require.NoError(t, err)

	assert.False(t, s.Next())
	assert.True(t, s.Done())

	sum, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Questions)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 67, sum.Score)
	assert.False(t, sum.Passed)
	assert.Equal(t, 16, sum.XPEarned)
	assert.Equal(t, 26*time.Second, sum.Duration)

	score, ok := ps.QuizScore("waves")
	require.True(t, ok)
	assert.Equal(t, 67, score)
	assert.Equal(t, 26, ps.StudyTime("waves"))
	assert.True(t, ps.IsAnswered("w2"))
	assert.False(t, ps.IsCorrect("w2"))

	assert.True(t, ps.IsTopicComplete("waves.decibels"))
	assert.False(t, ps.IsTopicComplete("waves.wavelength"), "one wrong answer on the topic")

	_, err = s.Finish(ctx)
	assert.ErrorIs(t, err, ErrSessionFinished)
	_, err = s.Answer(ctx, 0)
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestPracticeSession_UnansweredCountAsWrong(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)
	s, err := NewPractice(ctx, ps, testBank(t), "waves")
	require.NoError(t, err)

	_, err = s.Answer(ctx, 0)
	require.NoError(t, err)
	sum, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Answered)
	assert.Equal(t, 33, sum.Score)
}

func TestPracticeSession_Errors(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)

	_, err := NewPractice(ctx, ps, testBank(t), "optics")
	assert.Error(t, err)

	_, err = NewPractice(ctx, ps, testBank(t), "qa")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestPracticeSession_QuizScoreIsMaxWins(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)
	bank := testBank(t)

	run := func(choices ...int) int {
		s, err := NewPractice(ctx, ps, bank, "waves")
		require.NoError(t, err)
		for i, c := range choices {
			if i > 0 {
				s.Next()
			}
			_, err := s.Answer(ctx, c)
			require.NoError(t, err)
		}
		sum, err := s.Finish(ctx)
		require.NoError(t, err)
		return sum.Score
	}

	assert.Equal(t, 100, run(0, 1, 2))
	// Re-answering is a no-op in the store, but the session still scores it.
	assert.Equal(t, 0, run(1, 0, 0))

	best, _ := ps.QuizScore("waves")
	assert.Equal(t, 100, best)
	assert.Equal(t, 3, ps.Stats().Answered)
}

func TestFinalExam(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)

	s, err := NewFinalExam(ctx, ps, Builtin(), WithShuffle(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	assert.Equal(t, FinalExamSize, s.Len())
	assert.Equal(t, KindFinalExam, s.Kind)
	assert.Equal(t, course.FinalExamID, s.QuizID)

	modules := map[string]bool{}
	for {
		q, ok := s.Current()
		require.True(t, ok)
		modules[q.ModuleID] = true
		_, err := s.Answer(ctx, q.Answer)
		require.NoError(t, err)
		if !s.Next() {
			break
		}
	}
	assert.Greater(t, len(modules), 3)

	sum, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, sum.Score)
	assert.True(t, sum.Passed)

	st := ps.Stats()
	require.NotNil(t, st.FinalExamScore)
	assert.Equal(t, 100, *st.FinalExamScore)
	assert.Equal(t, 1, st.FinalExamAttempts)
	_, isQuiz := ps.QuizScore(course.FinalExamID)
	assert.False(t, isQuiz)
}

func TestFinalExam_SharesQuestionIDsWithPractice(t *testing.T) {
	ctx := context.Background()
	ps := newStore(t)
	bank := testBank(t)

	practice, err := NewPractice(ctx, ps, bank, "waves")
	require.NoError(t, err)
	for {
		q, _ := practice.Current()
		_, err := practice.Answer(ctx, q.Answer)
		require.NoError(t, err)
		if !practice.Next() {
			break
		}
	}
	_, err = practice.Finish(ctx)
	require.NoError(t, err)
	before := ps.Stats()

	exam, err := NewFinalExam(ctx, ps, bank, WithShuffle(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	require.Equal(t, 4, exam.Len())
	for {
		q, _ := exam.Current()
		o, err := exam.Answer(ctx, q.Answer)
		require.NoError(t, err)
		if q.ModuleID == "waves" {
			assert.Zero(t, o.XPEarned, "practised question %s", q.ID)
		} else {
			assert.Positive(t, o.XPEarned)
		}
		if !exam.Next() {
			break
		}
	}
	sum, err := exam.Finish(ctx)
	require.NoError(t, err)

	// Practised questions still count toward the exam score.
	assert.Equal(t, 100, sum.Score)
	st := ps.Stats()
	assert.Equal(t, 4, st.Answered)
	assert.Equal(t, before.CurrentStreak+1, st.CurrentStreak)
}

func TestFinalExam_LimitOverride(t *testing.T) {
	s, err := NewFinalExam(context.Background(), newStore(t), Builtin(), WithLimit(5))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
}

func TestSession_PersistenceWarning(t *testing.T) {
	ctx := context.Background()
	p := &progress.MemoryPersister{SaveErr: errors.New("disk full")}
	ps := newStoreWith(t, p)

	s, err := NewPractice(ctx, ps, testBank(t), "doppler")
	require.NoError(t, err)
	o, err := s.Answer(ctx, 0)
	require.NoError(t, err)
	assert.Error(t, o.Warning)

	sum, err := s.Finish(ctx)
	require.NoError(t, err)
	var perr *progress.PersistenceError
	assert.ErrorAs(t, sum.Warning, &perr)
	assert.Equal(t, 100, sum.Score)
}

func TestSession_RecordsStudyEvents(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewPractice(ctx, newStore(t), testBank(t), "doppler", WithEventRepo(db.EventRepo()))
	require.NoError(t, err)
	_, err = s.Answer(ctx, 0)
	require.NoError(t, err)
	_, err = s.Finish(ctx)
	require.NoError(t, err)

	events, err := db.EventRepo().QueryStudyEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first.
	assert.Equal(t, "end", events[0].Action)
	assert.Equal(t, 100, events[0].Score)
	assert.Equal(t, 1, events[0].Correct)
	assert.Equal(t, "start", events[1].Action)
	assert.Equal(t, s.ID, events[1].SessionID)
	assert.Equal(t, "practice", events[1].Kind)
	assert.Equal(t, "doppler", events[1].QuizID)
}
