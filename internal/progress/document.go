package progress

import (
	"encoding/json"
	"time"
)

// StorageKey is the key-value storage key holding the progress document.
const StorageKey = "spi-course-progress"

// Document is the flat JSON form of Progress.
type Document struct {
	// ModuleProgress is reserved. It is always written as {}.
	ModuleProgress    map[string]json.RawMessage `json:"moduleProgress"`
	QuizScores        map[string]int             `json:"quizScores"`
	StudyTime         map[string]int             `json:"studyTime"`
	CompletedTopics   IDSet                      `json:"completedTopics"`
	LastStudyDate     *time.Time                 `json:"lastStudyDate"`
	FinalExamScore    *int                       `json:"finalExamScore"`
	FinalExamAttempts int                        `json:"finalExamAttempts"`

	QuestionsAnswered IDSet   `json:"questionsAnswered"`
	CorrectAnswers    IDSet   `json:"correctAnswers"`
	Streaks           Streaks `json:"streaks"`
	XP                int     `json:"xp"`
}

// NewDocument converts p to its persisted form.
func NewDocument(p Progress) *Document {
	c := p.Clone()
	return &Document{
		ModuleProgress:    map[string]json.RawMessage{},
		QuizScores:        c.QuizScores,
		StudyTime:         c.StudyTime,
		CompletedTopics:   c.CompletedTopics,
		LastStudyDate:     c.LastStudyDate,
		FinalExamScore:    c.FinalExamScore,
		FinalExamAttempts: c.FinalExamAttempts,
		QuestionsAnswered: c.QuestionsAnswered,
		CorrectAnswers:    c.CorrectAnswers,
		Streaks:           c.Streaks,
		XP:                c.XP,
	}
}

// Progress converts the document back to in-memory state. Missing fields
// take their empty defaults.
func (d *Document) Progress() Progress {
	p := Progress{
		QuestionsAnswered: d.QuestionsAnswered,
		CorrectAnswers:    d.CorrectAnswers,
		CompletedTopics:   d.CompletedTopics,
		QuizScores:        d.QuizScores,
		StudyTime:         d.StudyTime,
		Streaks:           d.Streaks,
		FinalExamScore:    d.FinalExamScore,
		FinalExamAttempts: d.FinalExamAttempts,
		XP:                d.XP,
		LastStudyDate:     d.LastStudyDate,
	}
	return p.Clone()
}

// MarshalDocument encodes d as JSON.
func MarshalDocument(d *Document) ([]byte, error) {
	return json.Marshal(d)
}

// UnmarshalDocument decodes a JSON progress document.
func UnmarshalDocument(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
