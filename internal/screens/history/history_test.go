package history

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHistoryScreen_LoadsFinishedQuizzes(t *testing.T) {
	st := openStore(t)
	repo := st.EventRepo()
	ctx := context.Background()
	events := []store.StudyEventData{
		{SessionID: "a", Action: "start", Kind: "practice", QuizID: "waves", Questions: 5},
		{SessionID: "a", Action: "end", Kind: "practice", QuizID: "waves", Questions: 5, Correct: 4, Score: 80, XP: 32, DurationSecs: 90},
		{SessionID: "b", Action: "start", Kind: "final-exam", QuizID: "final-exam", Questions: 25},
	}
	for _, e := range events {
		if err := repo.AppendStudyEvent(ctx, e); err != nil {
			t.Fatalf("AppendStudyEvent: %v", err)
		}
	}

	s := New(repo)
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("expected loaded state")
	}
	if len(s.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1 finished quiz", len(s.sessions))
	}
	view := s.View(120, 30)
	if !strings.Contains(view, "80%") || !strings.Contains(view, "4/5 correct") {
		t.Errorf("view missing quiz result:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 30), "+32 XP") {
		t.Error("expanded row should show XP")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Esc(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
