// Package progress owns quiz and course progress: answer history, scores,
// streaks, XP and time on task. A Store applies the scoring rules, answers
// derived-statistics queries and writes every mutation through to a Persister.
package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

// IDSet is an unordered set of question or topic IDs.
// It serializes as a sorted JSON array.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id. It reports whether the set changed.
func (s IDSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON encodes the set as a sorted array.
func (s IDSet) MarshalJSON() ([]byte, error) {
	ids := s.Sorted()
	if ids == nil {
		ids = []string{}
	}
	return json.Marshal(ids)
}

// UnmarshalJSON accepts an array of strings or numbers. Numeric IDs are kept
// in their literal decimal form, so 7 and "7" name the same question.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(IDSet, len(raw))
	for _, v := range raw {
		switch id := v.(type) {
		case string:
			out[id] = struct{}{}
		case json.Number:
			out[id.String()] = struct{}{}
		default:
			return fmt.Errorf("id set: unsupported element %T", v)
		}
	}
	*s = out
	return nil
}

// Streaks tracks consecutive correct answers.
type Streaks struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Progress is the full progress state for one learner.
type Progress struct {
	QuestionsAnswered IDSet
	CorrectAnswers    IDSet
	CompletedTopics   IDSet

	// QuizScores maps quiz ID to the best percentage seen.
	QuizScores map[string]int

	// StudyTime maps a section or module ID to accumulated seconds.
	StudyTime map[string]int

	Streaks           Streaks
	FinalExamScore    *int
	FinalExamAttempts int
	XP                int
	LastStudyDate     *time.Time
}

// Empty returns the default, empty progress.
func Empty() Progress {
	return Progress{
		QuestionsAnswered: IDSet{},
		CorrectAnswers:    IDSet{},
		CompletedTopics:   IDSet{},
		QuizScores:        map[string]int{},
		StudyTime:         map[string]int{},
	}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	c := p
	c.QuestionsAnswered = maps.Clone(p.QuestionsAnswered)
	c.CorrectAnswers = maps.Clone(p.CorrectAnswers)
	c.CompletedTopics = maps.Clone(p.CompletedTopics)
	c.QuizScores = maps.Clone(p.QuizScores)
	c.StudyTime = maps.Clone(p.StudyTime)
	if p.FinalExamScore != nil {
		v := *p.FinalExamScore
		c.FinalExamScore = &v
	}
	if p.LastStudyDate != nil {
		v := *p.LastStudyDate
		c.LastStudyDate = &v
	}
	c.normalize()
	return c
}

// normalize replaces nil collections with empty ones and restores
// CorrectAnswers ⊆ QuestionsAnswered for state read from storage.
func (p *Progress) normalize() {
	if p.QuestionsAnswered == nil {
		p.QuestionsAnswered = IDSet{}
	}
	if p.CorrectAnswers == nil {
		p.CorrectAnswers = IDSet{}
	}
	if p.CompletedTopics == nil {
		p.CompletedTopics = IDSet{}
	}
	if p.QuizScores == nil {
		p.QuizScores = map[string]int{}
	}
	if p.StudyTime == nil {
		p.StudyTime = map[string]int{}
	}
	for id := range p.CorrectAnswers {
		p.QuestionsAnswered.Add(id)
	}
	for id, score := range p.QuizScores {
		p.QuizScores[id] = clampPercent(score)
	}
	if p.FinalExamScore != nil {
		v := clampPercent(*p.FinalExamScore)
		p.FinalExamScore = &v
	}
	p.Streaks.Current = max(p.Streaks.Current, 0)
	p.Streaks.Best = max(p.Streaks.Best, p.Streaks.Current)
	p.FinalExamAttempts = max(p.FinalExamAttempts, 0)
	p.XP = max(p.XP, 0)
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
