package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/router"
	"github.com/abhisek/sonoprep/internal/screen"
)

func testDeps(t *testing.T) screen.Deps {
	t.Helper()
	ps, err := progress.New(context.Background(), nil)
	if err != nil {
		t.Fatalf("progress.New: %v", err)
	}
	return screen.Deps{Progress: ps, Bank: quiz.Builtin()}
}

func TestHomeScreen_MenuPushesScreens(t *testing.T) {
	want := []string{"Modules", "Final Exam", "Dashboard", "Tutor", "History"}
	for i, title := range want {
		h := New(testDeps(t))
		for range i {
			h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		}
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatalf("item %d: expected a command", i)
		}
		msg, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("item %d: expected PushScreenMsg", i)
		}
		if got := msg.Screen.Title(); got != title {
			t.Errorf("item %d pushed %q, want %q", i, got, title)
		}
	}
}

func TestHomeScreen_ViewShowsStatsAndRecommendation(t *testing.T) {
	view := New(testDeps(t)).View(120, 40)
	for _, want := range []string{"LEVEL 1", "Up next:", "PRACTICE", "Tutor is offline"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHomeScreen_UpdateNote(t *testing.T) {
	h := New(testDeps(t))
	h.Update(UpdateAvailableMsg{Latest: "v1.2.0"})
	if !strings.Contains(h.View(120, 40), "v1.2.0") {
		t.Error("expected update note in view")
	}
}

func TestHomeScreen_MascotVariant(t *testing.T) {
	deps := testDeps(t)
	h := New(deps)
	if got := h.mascotVariant(deps.Progress.Stats()); got != MascotIdle {
		t.Errorf("fresh progress variant = %d, want idle", got)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	st := progress.Stats{LastStudyDate: &yesterday}
	if got := h.mascotVariant(st); got != MascotAlert {
		t.Errorf("stale study date variant = %d, want alert", got)
	}

	score := 85
	st.FinalExamScore = &score
	if got := h.mascotVariant(st); got != MascotCelebrating {
		t.Errorf("passed exam variant = %d, want celebrating", got)
	}
}
