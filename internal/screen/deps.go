package screen

import (
	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/speech"
	"github.com/abhisek/sonoprep/internal/store"
)

// Deps are the services screens read from and write to. Progress and Bank
// are required; the rest may be nil and the screens degrade accordingly.
type Deps struct {
	Progress *progress.Store
	Bank     *quiz.Bank
	Events   store.EventRepo
	Tutor    *kb.Tutor
	Speech   *speech.Controller
	Banner   *speech.Banner
}
