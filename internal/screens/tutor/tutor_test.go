package tutor

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/screen"
)

// fakeService implements kb.Service for testing.
type fakeService struct {
	answer string
}

func (f *fakeService) Query(_ context.Context, question string) (*kb.Answer, error) {
	return &kb.Answer{Text: f.answer, Sources: []string{"Edelman ch. 2"}}, nil
}
func (f *fakeService) RelatedContent(context.Context, string) ([]kb.Snippet, error) {
	return nil, nil
}
func (f *fakeService) Search(context.Context, string) ([]kb.Snippet, error) {
	return nil, nil
}

func typeText(s *TutorScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestTutorScreen_AskAsync(t *testing.T) {
	tutor := kb.NewTutor(&fakeService{answer: "Higher frequency means shorter wavelength."})
	s := New(screen.Deps{Tutor: tutor})

	typeText(s, "frequency?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an async ask command")
	}
	if !s.pending {
		t.Error("screen should be pending while the tutor answers")
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after asking")
	}

	s.Update(cmd())
	if s.pending {
		t.Error("reply should clear pending state")
	}
	turns := tutor.Transcript()
	if len(turns) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(turns))
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "shorter wavelength") || !strings.Contains(view, "Edelman") {
		t.Error("view should show the reply and its sources")
	}
}

func TestTutorScreen_EmptyQuestionIgnored(t *testing.T) {
	s := New(screen.Deps{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank input should not send a question")
	}
}

func TestTutorScreen_OfflineFallback(t *testing.T) {
	s := New(screen.Deps{})
	typeText(s, "doppler")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an ask command")
	}
	s.Update(cmd())
	turns := s.tutor.Transcript()
	if len(turns) != 2 || !turns[1].Fallback {
		t.Fatalf("expected a fallback reply, got %+v", turns)
	}
}

func TestTutorScreen_TabSuggests(t *testing.T) {
	s := New(screen.Deps{})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.input.Value() != kb.Suggestions[0] {
		t.Errorf("input = %q, want first suggestion", s.input.Value())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.input.Value() != kb.Suggestions[1] {
		t.Errorf("input = %q, want second suggestion", s.input.Value())
	}
}

func TestTutorScreen_Clear(t *testing.T) {
	tutor := kb.NewTutor(&fakeService{answer: "ok"})
	if _, err := tutor.Ask(context.Background(), "hi"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	s := New(screen.Deps{Tutor: tutor})
	s.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if n := len(tutor.Transcript()); n != 0 {
		t.Errorf("transcript length = %d after clear, want 0", n)
	}
}
