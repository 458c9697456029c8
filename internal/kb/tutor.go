package kb

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Speaker identifies who produced a Turn.
type Speaker string

const (
	SpeakerStudent Speaker = "student"
	SpeakerTutor   Speaker = "tutor"
)

// Turn is one entry in the tutor transcript.
type Turn struct {
	Speaker Speaker
	Text    string
	Sources []string

	// Fallback is set when the knowledge base could not answer and Text
	// is the canned reply.
	Fallback bool

	// Err is the failure behind a fallback turn.
	Err error
}

// Suggestions are offered when the knowledge base cannot answer.
var Suggestions = []string{
	"What is the relationship between frequency and wavelength?",
	"How does attenuation change with frequency?",
	"What determines axial resolution?",
	"Explain the Doppler equation.",
	"What causes a reverberation artifact?",
	"How does the near zone length depend on transducer diameter?",
}

const fallbackText = "I couldn't reach the knowledge base right now. Try again in a moment, or pick one of these topics:"

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// Tutor holds a chat transcript with the knowledge base. It is safe for
// use from a background command while the UI reads the transcript.
type Tutor struct {
	svc Service

	mu         sync.Mutex
	transcript []Turn
}

// NewTutor creates a tutor over svc. A nil svc answers every question
// with the fallback turn.
func NewTutor(svc Service) *Tutor {
	return &Tutor{svc: svc}
}

// Ask appends the question and the tutor's reply to the transcript and
// returns the reply. Knowledge-base failures never surface as errors;
// they produce a fallback turn listing Suggestions.
func (t *Tutor) Ask(ctx context.Context, question string) (Turn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Turn{}, ErrEmptyQuestion
	}
	t.append(Turn{Speaker: SpeakerStudent, Text: question})

	reply := t.answer(ctx, question)
	t.append(reply)
	return reply, nil
}

func (t *Tutor) answer(ctx context.Context, question string) Turn {
	if t.svc == nil {
		return FallbackTurn(ErrNotConfigured)
	}
	ans, err := t.svc.Query(ctx, question)
	if err != nil {
		return FallbackTurn(err)
	}
	return Turn{Speaker: SpeakerTutor, Text: ans.Text, Sources: ans.Sources}
}

// FallbackTurn is the canned reply used when err prevents an answer.
func FallbackTurn(err error) Turn {
	var b strings.Builder
	b.WriteString(fallbackText)
	for _, s := range Suggestions {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return Turn{Speaker: SpeakerTutor, Text: b.String(), Fallback: true, Err: err}
}

func (t *Tutor) append(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transcript = append(t.transcript, turn)
}

// Transcript returns a copy of the conversation so far, oldest first.
func (t *Tutor) Transcript() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.transcript))
	copy(out, t.transcript)
	return out
}

// Clear empties the transcript.
func (t *Tutor) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transcript = nil
}
