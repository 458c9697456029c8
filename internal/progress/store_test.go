package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, p Persister) *Store {
	t.Helper()
	s, err := New(context.Background(), p, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s
}

func answer(id string, correct bool, secs int) Answer {
	return Answer{QuestionID: id, Correct: correct, TimeSpent: secs, ContextID: "physics-basics"}
}

func TestRecordAnswer_UpdatesSetsAndStreak(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	res, err := s.RecordAnswer(ctx, answer("q1", true, 12))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 5, res.XPEarned)
	assert.True(t, s.IsAnswered("q1"))
	assert.True(t, s.IsCorrect("q1"))
	assert.Equal(t, 1, res.Stats.CurrentStreak)

	_, err = s.RecordAnswer(ctx, answer("q2", false, 4))
	require.NoError(t, err)
	assert.True(t, s.IsAnswered("q2"))
	assert.False(t, s.IsCorrect("q2"))

	st := s.Stats()
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 1, st.BestStreak)
	assert.Equal(t, 16, s.StudyTime("physics-basics"))
	require.NotNil(t, st.LastStudyDate)
	assert.Equal(t, fixedNow, *st.LastStudyDate)
}

func TestRecordAnswer_DuplicateIsNoOp(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_, err := s.RecordAnswer(ctx, answer("q1", true, 30))
	require.NoError(t, err)
	before := s.Snapshot()

	// Same ID again, even with a different outcome, changes nothing.
	res, err := s.RecordAnswer(ctx, answer("q1", false, 99))
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Zero(t, res.XPEarned)
	assert.Equal(t, before, s.Snapshot())
}

func TestRecordAnswer_CorrectSubsetOfAnswered(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	outcomes := []bool{true, false, true, true, false, true, false, false, true}
	for i, correct := range outcomes {
		id := string(rune('a' + i))
		_, err := s.RecordAnswer(ctx, answer(id, correct, i))
		require.NoError(t, err)
		// Re-answer every other question.
		if i%2 == 0 {
			_, err = s.RecordAnswer(ctx, answer(id, !correct, i))
			require.NoError(t, err)
		}

		snap := s.Snapshot()
		for cid := range snap.CorrectAnswers {
			assert.True(t, snap.QuestionsAnswered.Has(cid), "correct %q not answered", cid)
		}
	}
}

func TestRecordAnswer_StreakRules(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	seq := []struct {
		correct     bool
		wantCurrent int
		wantBest    int
	}{
		{true, 1, 1},
		{true, 2, 2},
		{true, 3, 3},
		{false, 0, 3},
		{true, 1, 3},
		{true, 2, 3},
		{true, 3, 3},
		{true, 4, 4},
	}
	prevBest := 0
	for i, step := range seq {
		res, err := s.RecordAnswer(ctx, answer(string(rune('a'+i)), step.correct, 20))
		require.NoError(t, err)
		assert.Equal(t, step.wantCurrent, res.Stats.CurrentStreak, "step %d current", i)
		assert.Equal(t, step.wantBest, res.Stats.BestStreak, "step %d best", i)
		assert.GreaterOrEqual(t, res.Stats.BestStreak, prevBest)
		prevBest = res.Stats.BestStreak
	}
}

func TestRecordAnswer_XPUsesStreakAfterIncrement(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	var earned []int
	for i := 0; i < 6; i++ {
		res, err := s.RecordAnswer(ctx, answer(string(rune('a'+i)), true, 8))
		require.NoError(t, err)
		earned = append(earned, res.XPEarned)
	}
	// Fifth correct answer reaches a streak of 5 and gets the streak bonus.
	assert.Equal(t, []int{8, 8, 8, 8, 10, 10}, earned)
	assert.Equal(t, 52, s.Stats().XP)
}

func TestRecordAnswer_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    Answer
		field string
	}{
		{"empty id", Answer{QuestionID: "", ContextID: "m1"}, "QuestionID"},
		{"blank id", Answer{QuestionID: "   ", ContextID: "m1"}, "QuestionID"},
		{"negative time", Answer{QuestionID: "q1", TimeSpent: -1, ContextID: "m1"}, "TimeSpent"},
		{"empty context", Answer{QuestionID: "q1", ContextID: ""}, "ContextID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &MemoryPersister{}
			s := newTestStore(t, mem)
			before := s.Snapshot()

			res, err := s.RecordAnswer(context.Background(), tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var ie *InputError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)

			assert.False(t, res.Applied)
			assert.Equal(t, before, s.Snapshot())
			assert.Zero(t, mem.Saves(), "invalid input must not persist")
		})
	}
}

func TestRecordQuizScore_MaxWins(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	_, err := s.RecordQuizScore(ctx, "quiz-1", 60)
	require.NoError(t, err)
	_, err = s.RecordQuizScore(ctx, "quiz-1", 45)
	require.NoError(t, err)

	got, ok := s.QuizScore("quiz-1")
	require.True(t, ok)
	assert.Equal(t, 60, got)

	_, err = s.RecordQuizScore(ctx, "quiz-1", 90)
	require.NoError(t, err)
	got, _ = s.QuizScore("quiz-1")
	assert.Equal(t, 90, got)
}

func TestRecordQuizScore_OutOfRange(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	for _, score := range []int{-1, 101} {
		_, err := s.RecordQuizScore(ctx, "quiz-1", score)
		assert.ErrorIs(t, err, ErrInvalidInput, "score %d", score)
	}
	_, err := s.RecordQuizScore(ctx, "", 50)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, ok := s.QuizScore("quiz-1")
	assert.False(t, ok)
}

func TestRecordFinalExam_BestScoreAllAttempts(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	for _, score := range []int{50, 70, 65} {
		_, err := s.RecordFinalExam(ctx, score)
		require.NoError(t, err)
	}

	st := s.Stats()
	require.NotNil(t, st.FinalExamScore)
	assert.Equal(t, 70, *st.FinalExamScore)
	assert.Equal(t, 3, st.FinalExamAttempts)

	_, err := s.RecordFinalExam(ctx, 150)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 3, s.Stats().FinalExamAttempts)
}

func TestRecordFinalExam_ZeroScoreIsRecorded(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.RecordFinalExam(context.Background(), 0)
	require.NoError(t, err)

	st := s.Stats()
	require.NotNil(t, st.FinalExamScore)
	assert.Equal(t, 0, *st.FinalExamScore)
	assert.Equal(t, 1, st.FinalExamAttempts)
}

func TestMarkTopicComplete_Idempotent(t *testing.T) {
	mem := &MemoryPersister{}
	s := newTestStore(t, mem)
	ctx := context.Background()

	res, err := s.MarkTopicComplete(ctx, "doppler-basics")
	require.NoError(t, err)
	assert.True(t, res.Applied)

	res, err = s.MarkTopicComplete(ctx, "doppler-basics")
	require.NoError(t, err)
	assert.False(t, res.Applied)

	assert.True(t, s.IsTopicComplete("doppler-basics"))
	assert.Equal(t, 1, s.Stats().TopicsCompleted)
	assert.Equal(t, 1, mem.Saves())

	_, err = s.MarkTopicComplete(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDerivedQueries(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	// Three correct, one incorrect, in a module of five questions.
	for _, a := range []Answer{
		answer("m1-q1", true, 5),
		answer("m1-q2", true, 5),
		answer("m1-q3", false, 5),
		answer("m1-q4", true, 5),
	} {
		_, err := s.RecordAnswer(ctx, a)
		require.NoError(t, err)
	}

	module := []string{"m1-q1", "m1-q2", "m1-q3", "m1-q4", "m1-q5"}
	assert.Equal(t, 80, s.SectionProgress(module))
	assert.Equal(t, 75, s.Accuracy(module))
	assert.Equal(t, 75, s.OverallAccuracy())

	// Nothing answered in this section yet.
	assert.Equal(t, 0, s.Accuracy([]string{"m2-q1", "m2-q2"}))
	assert.Equal(t, 0, s.SectionProgress([]string{"m2-q1"}))
	assert.Equal(t, 0, s.SectionProgress(nil))
	assert.Equal(t, 0, s.Accuracy(nil))

	// Duplicate ids count once.
	assert.Equal(t, 50, s.SectionProgress([]string{"m1-q1", "m1-q1", "m2-q1"}))
}

func TestReset(t *testing.T) {
	mem := &MemoryPersister{}
	s := newTestStore(t, mem)
	ctx := context.Background()

	_, err := s.RecordAnswer(ctx, answer("q1", true, 3))
	require.NoError(t, err)
	_, err = s.RecordQuizScore(ctx, "quiz-1", 80)
	require.NoError(t, err)

	res, err := s.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, Empty(), s.Snapshot())

	reloaded := newTestStore(t, mem)
	assert.Equal(t, Empty(), reloaded.Snapshot())
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := s.RecordAnswer(context.Background(), answer("q1", true, 3))
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.QuestionsAnswered.Add("q2")
	snap.StudyTime["other"] = 100

	assert.False(t, s.IsAnswered("q2"))
	assert.Zero(t, s.StudyTime("other"))
}
