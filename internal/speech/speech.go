// Package speech reads study text aloud. A Controller sanitizes text and
// tracks playback state over a pluggable Engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Settings controls how text is spoken.
type Settings struct {
	Voice  string  `validate:"omitempty,max=64"`
	Rate   float64 `validate:"gte=0.1,lte=10"`
	Pitch  float64 `validate:"gte=0,lte=2"`
	Volume float64 `validate:"gte=0,lte=1"`
}

// DefaultSettings speaks with the engine's default voice at normal rate,
// pitch and volume.
func DefaultSettings() Settings {
	return Settings{Rate: 1, Pitch: 1, Volume: 1}
}

// Voice is one voice offered by an engine.
type Voice struct {
	Name     string
	Language string
}

// Engine produces audio.
type Engine interface {
	// Speak reads text and returns when playback ends, Stop is called, or
	// ctx is done.
	Speak(ctx context.Context, text string, s Settings) error
	Stop() error
	Pause() error
	Resume() error
	Voices(ctx context.Context) ([]Voice, error)
}

// State is the playback state of a Controller.
type State int

const (
	Idle State = iota
	Speaking
	Paused
)

func (s State) String() string {
	switch s {
	case Speaking:
		return "speaking"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

var (
	// ErrInvalidSettings wraps out-of-range setting values.
	ErrInvalidSettings = errors.New("invalid speech settings")

	// ErrNothingToSay is returned when text is empty after sanitizing.
	ErrNothingToSay = errors.New("nothing to say")

	// ErrNotSpeaking is returned by Pause when nothing is playing.
	ErrNotSpeaking = errors.New("not speaking")

	// ErrNotPaused is returned by Resume when playback is not paused.
	ErrNotPaused = errors.New("not paused")
)

var validate = validator.New()

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%v fails %s=%s", ErrInvalidSettings, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Controller owns the current settings and playback state.
type Controller struct {
	engine Engine

	mu       sync.Mutex
	settings Settings
	state    State
}

// NewController creates a controller over engine with DefaultSettings.
func NewController(engine Engine) *Controller {
	return &Controller{engine: engine, settings: DefaultSettings()}
}

// Speak sanitizes text and plays it, blocking until playback ends.
func (c *Controller) Speak(ctx context.Context, text string) error {
	clean := Sanitize(text)
	if clean == "" {
		return ErrNothingToSay
	}

	c.mu.Lock()
	settings := c.settings
	c.state = Speaking
	c.mu.Unlock()

	err := c.engine.Speak(ctx, clean, settings)

	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
	return err
}

// Stop ends playback.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return nil
	}
	if err := c.engine.Stop(); err != nil {
		return err
	}
	c.state = Idle
	return nil
}

// Pause suspends playback.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Speaking {
		return ErrNotSpeaking
	}
	if err := c.engine.Pause(); err != nil {
		return err
	}
	c.state = Paused
	return nil
}

// Resume continues paused playback.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused {
		return ErrNotPaused
	}
	if err := c.engine.Resume(); err != nil {
		return err
	}
	c.state = Speaking
	return nil
}

// State reports the playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Voices lists the engine's voices.
func (c *Controller) Voices(ctx context.Context) ([]Voice, error) {
	return c.engine.Voices(ctx)
}

// Settings returns the current settings.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// SetSettings replaces all settings at once. Invalid settings are
// rejected and the previous ones kept.
func (c *Controller) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
	return nil
}

func (c *Controller) update(fn func(*Settings)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.settings
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.settings = next
	return nil
}

func (c *Controller) Voice() string   { return c.Settings().Voice }
func (c *Controller) Rate() float64   { return c.Settings().Rate }
func (c *Controller) Pitch() float64  { return c.Settings().Pitch }
func (c *Controller) Volume() float64 { return c.Settings().Volume }

func (c *Controller) SetVoice(v string) error {
	return c.update(func(s *Settings) { s.Voice = v })
}

func (c *Controller) SetRate(r float64) error {
	return c.update(func(s *Settings) { s.Rate = r })
}

func (c *Controller) SetPitch(p float64) error {
	return c.update(func(s *Settings) { s.Pitch = p })
}

func (c *Controller) SetVolume(v float64) error {
	return c.update(func(s *Settings) { s.Volume = v })
}
