package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sonoprep/internal/ui/theme"
)

// MascotVariant selects which probe art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Final exam passed
	MascotAlert                            // Not studied today
)

const mascotIdle = `  ┌───┐
  │◉ ◉│
  │ ▽ │
 ┌┴───┴┐
 │)))))│
 └─────┘`

const mascotCelebrating = `  ┌───┐
  │★ ★│
  │ ▿ │
 ┌┴───┴┐
 │)))))│
 └╥═══╥┘
  ╚═══╝`

const mascotAlert = `  ┌───┐
  │◉ ◉│ !
  │ ▽ │
 ┌┴───┴┐
 │)))))│
 └─────┘`

// RenderMascot returns the probe art for variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Success
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
