package kb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	answer *Answer
	err    error
}

func (s stubService) Query(context.Context, string) (*Answer, error) { return s.answer, s.err }

func (s stubService) RelatedContent(context.Context, string) ([]Snippet, error) { return nil, s.err }

func (s stubService) Search(context.Context, string) ([]Snippet, error) { return nil, s.err }

func TestTutor_Answer(t *testing.T) {
	tutor := NewTutor(stubService{answer: &Answer{Text: "About 1540 m/s.", Sources: []string{"Ch. 3"}}})

	turn, err := tutor.Ask(context.Background(), "  Speed of sound in soft tissue?  ")
	require.NoError(t, err)
	assert.False(t, turn.Fallback)
	assert.Equal(t, "About 1540 m/s.", turn.Text)

	tr := tutor.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, SpeakerStudent, tr[0].Speaker)
	assert.Equal(t, "Speed of sound in soft tissue?", tr[0].Text)
	assert.Equal(t, SpeakerTutor, tr[1].Speaker)
	assert.Equal(t, []string{"Ch. 3"}, tr[1].Sources)
}

func TestTutor_RemoteFailureFallsBack(t *testing.T) {
	remote := &RemoteError{Status: 503}
	tutor := NewTutor(stubService{err: remote})

	turn, err := tutor.Ask(context.Background(), "What is PRF?")
	require.NoError(t, err)
	assert.True(t, turn.Fallback)
	assert.ErrorIs(t, turn.Err, ErrRemoteService)
	for _, s := range Suggestions {
		assert.Contains(t, turn.Text, s)
	}
	assert.Len(t, tutor.Transcript(), 2)
}

func TestTutor_NoService(t *testing.T) {
	turn, err := NewTutor(nil).Ask(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, turn.Fallback)
	assert.True(t, errors.Is(turn.Err, ErrNotConfigured))
}

func TestTutor_EmptyQuestion(t *testing.T) {
	tutor := NewTutor(stubService{})
	_, err := tutor.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, tutor.Transcript())
}

func TestTutor_TranscriptIsCopyAndClear(t *testing.T) {
	tutor := NewTutor(stubService{answer: &Answer{Text: "ok"}})
	_, _ = tutor.Ask(context.Background(), "q")

	tr := tutor.Transcript()
	tr[0].Text = "mutated"
	assert.Equal(t, "q", tutor.Transcript()[0].Text)

	tutor.Clear()
	assert.Empty(t, tutor.Transcript())
}
