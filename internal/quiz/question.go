package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/sonoprep/internal/course"
)

// Question is one multiple-choice question.
type Question struct {
	ID          string   `yaml:"id"`
	ModuleID    string   `yaml:"module"`
	Topic       string   `yaml:"topic,omitempty"`
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"` // zero-based index into Options
	Explanation string   `yaml:"explanation,omitempty"`
}

// Correct returns the text of the correct option.
func (q Question) Correct() string {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return ""
	}
	return q.Options[q.Answer]
}

// ErrInvalidBank is returned when a question set fails validation.
var ErrInvalidBank = errors.New("invalid question bank")

// Validate checks a single question against the course catalog.
func (q Question) Validate() error {
	var errs []string
	if strings.TrimSpace(q.ID) == "" || strings.ContainsAny(q.ID, " \t\r\n") {
		errs = append(errs, "id must be non-empty and contain no whitespace")
	}
	if !course.HasModule(q.ModuleID) {
		errs = append(errs, fmt.Sprintf("unknown module %q", q.ModuleID))
	} else if q.Topic != "" {
		if owner, ok := course.ModuleForTopic(q.Topic); !ok || owner != q.ModuleID {
			errs = append(errs, fmt.Sprintf("topic %q is not part of module %q", q.Topic, q.ModuleID))
		}
	}
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, "prompt is empty")
	}
	if len(q.Options) < 2 {
		errs = append(errs, fmt.Sprintf("needs at least 2 options, has %d", len(q.Options)))
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, fmt.Sprintf("option %d is empty", i))
		}
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		errs = append(errs, fmt.Sprintf("answer index %d out of range", q.Answer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("question %q: %s", q.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Bank is an immutable, validated set of questions.
type Bank struct {
	questions []Question
	byID      map[string]int
}

// NewBank validates questions and indexes them by ID.
func NewBank(questions []Question) (*Bank, error) {
	var errs []string
	b := &Bank{
		questions: slices.Clone(questions),
		byID:      make(map[string]int, len(questions)),
	}
	for i, q := range b.questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
		if _, dup := b.byID[q.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		b.byID[q.ID] = i
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w:\n  %s", ErrInvalidBank, strings.Join(errs, "\n  "))
	}
	return b, nil
}

var builtin *Bank

func init() {
	b, err := NewBank(seedQuestions)
	if err != nil {
		panic(err)
	}
	builtin = b
}

// Builtin returns the bundled SPI question bank.
func Builtin() *Bank { return builtin }

// Merge returns a new bank holding b's questions plus extra. A question in
// extra replaces the one in b with the same ID.
func (b *Bank) Merge(extra []Question) (*Bank, error) {
	merged := slices.Clone(b.questions)
	for _, q := range extra {
		if i, ok := b.byID[q.ID]; ok {
			merged[i] = q
			continue
		}
		merged = append(merged, q)
	}
	return NewBank(merged)
}

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Get returns a question by ID.
func (b *Bank) Get(id string) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// All returns every question in bank order.
func (b *Bank) All() []Question {
	return slices.Clone(b.questions)
}

// ByModule returns the questions of one module in bank order.
func (b *Bank) ByModule(moduleID string) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.ModuleID == moduleID {
			out = append(out, q)
		}
	}
	return out
}

// IDs returns every question ID in bank order.
func (b *Bank) IDs() []string {
	ids := make([]string, len(b.questions))
	for i, q := range b.questions {
		ids[i] = q.ID
	}
	return ids
}

// ModuleQuestionIDs returns the IDs of one module's questions.
func (b *Bank) ModuleQuestionIDs(moduleID string) []string {
	var ids []string
	for _, q := range b.questions {
		if q.ModuleID == moduleID {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// CountByModule returns the number of questions per module ID.
func (b *Bank) CountByModule() map[string]int {
	counts := make(map[string]int)
	for _, q := range b.questions {
		counts[q.ModuleID]++
	}
	return counts
}
