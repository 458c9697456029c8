package speech

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ErrNoEngine is returned when no supported TTS binary is installed.
var ErrNoEngine = errors.New("no text-to-speech program found (install espeak-ng, espeak, or use macOS say)")

// candidates are probed in order by FindCommandEngine.
var candidates = []string{"espeak-ng", "espeak", "say"}

// CommandEngine speaks through a local TTS program.
type CommandEngine struct {
	bin string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandEngine wraps the TTS binary at path. The argument dialect
// is picked from the binary name.
func NewCommandEngine(path string) *CommandEngine {
	return &CommandEngine{bin: path}
}

// FindCommandEngine returns an engine for the first TTS binary on PATH.
func FindCommandEngine() (*CommandEngine, error) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return NewCommandEngine(path), nil
		}
	}
	return nil, ErrNoEngine
}

// Binary returns the path of the TTS program.
func (e *CommandEngine) Binary() string { return e.bin }

func (e *CommandEngine) isSay() bool {
	return filepath.Base(e.bin) == "say"
}

// args builds the command line for text under s.
func (e *CommandEngine) args(text string, s Settings) []string {
	wpm := strconv.Itoa(int(175 * s.Rate))
	if e.isSay() {
		args := []string{"-r", wpm}
		if s.Voice != "" {
			args = append(args, "-v", s.Voice)
		}
		return append(args, "--", text)
	}

	// espeak: pitch 0-99 (default 50), amplitude 0-200 (default 100).
	pitch := min(int(50*s.Pitch), 99)
	amp := int(100 * s.Volume)
	args := []string{"-s", wpm, "-p", strconv.Itoa(pitch), "-a", strconv.Itoa(amp)}
	if s.Voice != "" {
		args = append(args, "-v", s.Voice)
	}
	return append(args, "--", text)
}

// Speak runs the TTS program and waits for it to exit.
func (e *CommandEngine) Speak(ctx context.Context, text string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.bin, e.args(text, s)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.mu.Lock()
	if e.cmd != nil {
		e.mu.Unlock()
		return errors.New("already speaking")
	}
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("start %s: %w", filepath.Base(e.bin), err)
	}
	e.cmd = cmd
	e.mu.Unlock()

	err := cmd.Wait()

	e.mu.Lock()
	stopped := e.cmd == nil
	e.cmd = nil
	e.mu.Unlock()

	switch {
	case stopped:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return fmt.Errorf("%s: %w: %s", filepath.Base(e.bin), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Stop kills the running TTS program, if any.
func (e *CommandEngine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cmd == nil || e.cmd.Process == nil {
		return nil
	}
	err := e.cmd.Process.Kill()
	e.cmd = nil
	return err
}

// Pause is not supported by command-line engines.
func (e *CommandEngine) Pause() error {
	return fmt.Errorf("pause: %w", errors.ErrUnsupported)
}

// Resume is not supported by command-line engines.
func (e *CommandEngine) Resume() error {
	return fmt.Errorf("resume: %w", errors.ErrUnsupported)
}

// Voices lists the voices the program reports.
func (e *CommandEngine) Voices(ctx context.Context) ([]Voice, error) {
	var args []string
	if e.isSay() {
		args = []string{"-v", "?"}
	} else {
		args = []string{"--voices"}
	}
	out, err := exec.CommandContext(ctx, e.bin, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	if e.isSay() {
		return parseSayVoices(out), nil
	}
	return parseEspeakVoices(out), nil
}

// parseEspeakVoices reads `espeak --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-gb           --/M      English_(Great_Britain) gmw/en
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		f := strings.Fields(sc.Text())
		if len(f) < 4 {
			continue
		}
		voices = append(voices, Voice{Name: f[3], Language: f[1]})
	}
	return voices
}

// parseSayVoices reads `say -v ?` output:
//
//	Alex                en_US    # Most people recognize me by my voice.
func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		f := strings.Fields(line)
		if len(f) < 2 {
			continue
		}
		// Names may contain spaces; the locale is the last field.
		voices = append(voices, Voice{
			Name:     strings.Join(f[:len(f)-1], " "),
			Language: f[len(f)-1],
		})
	}
	return voices
}
