package quiz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/sonoprep/internal/course"
)

func TestBuiltinBank_CoversEveryModule(t *testing.T) {
	b := Builtin()
	require.NotNil(t, b)
	counts := b.CountByModule()
	for _, m := range course.Modules() {
		assert.GreaterOrEqual(t, counts[m.ID], 3, "module %s", m.ID)
	}
	assert.Equal(t, len(b.IDs()), b.Len())

	q, ok := b.Get("waves-03")
	require.True(t, ok)
	assert.Equal(t, "0.77 mm", q.Correct())
	_, ok = b.Get("missing")
	assert.False(t, ok)
}

func TestNewBank_RejectsInvalid(t *testing.T) {
	good := Question{ID: "x-1", ModuleID: "waves", Prompt: "p", Options: []string{"a", "b"}, Answer: 1}

	tests := []struct {
		name string
		mod  func(q *Question)
		want string
	}{
		{"blank id", func(q *Question) { q.ID = " " }, "no whitespace"},
		{"unknown module", func(q *Question) { q.ModuleID = "optics" }, "unknown module"},
		{"foreign topic", func(q *Question) { q.Topic = "doppler.aliasing" }, "not part of module"},
		{"empty prompt", func(q *Question) { q.Prompt = "" }, "prompt is empty"},
		{"one option", func(q *Question) { q.Options = []string{"a"}; q.Answer = 0 }, "at least 2 options"},
		{"answer out of range", func(q *Question) { q.Answer = 2 }, "out of range"},
		{"negative answer", func(q *Question) { q.Answer = -1 }, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := good
			q.Options = append([]string(nil), good.Options...)
			tt.mod(&q)
			_, err := NewBank([]Question{q})
			require.ErrorIs(t, err, ErrInvalidBank)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := NewBank([]Question{good, good})
	require.ErrorIs(t, err, ErrInvalidBank)
	assert.Contains(t, err.Error(), "duplicate question ID")

	b, err := NewBank([]Question{good})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
}

func TestMerge_ReplacesAndAppends(t *testing.T) {
	base := Builtin()
	replaced := Question{ID: "waves-01", ModuleID: "waves", Prompt: "replaced", Options: []string{"a", "b"}, Answer: 0}
	added := Question{ID: "waves-99", ModuleID: "waves", Prompt: "new", Options: []string{"a", "b"}, Answer: 1}

	merged, err := base.Merge([]Question{replaced, added})
	require.NoError(t, err)
	assert.Equal(t, base.Len()+1, merged.Len())
	q, _ := merged.Get("waves-01")
	assert.Equal(t, "replaced", q.Prompt)
	assert.Contains(t, merged.ModuleQuestionIDs("waves"), "waves-99")

	orig, _ := base.Get("waves-01")
	assert.NotEqual(t, "replaced", orig.Prompt, "merge must not modify the base bank")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`questions:
  - id: doppler-10
    module: doppler
    topic: doppler.aliasing
    prompt: Which change reduces aliasing?
    options: [Lower PRF, Raise the baseline shift and PRF, Higher transducer frequency, Deeper sample volume]
    answer: 1
    explanation: Raising PRF raises the Nyquist limit.
`), 0o644))

	qs, err := LoadYAML(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "doppler", qs[0].ModuleID)
	assert.Equal(t, 1, qs[0].Answer)
	assert.Len(t, qs[0].Options, 4)

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
}

func TestLoadYAML_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte(`questions:
  - id: q1
    module: nowhere
    prompt: x
    options: [a, b]
    answer: 5
`), 0o644))

	_, err := LoadYAML(path)
	require.ErrorIs(t, err, ErrInvalidBank)
	assert.Contains(t, err.Error(), "unknown module")
	assert.Contains(t, err.Error(), "out of range")

	require.NoError(t, os.WriteFile(path, []byte("questions: [unclosed"), 0o644))
	_, err = LoadYAML(path)
	require.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"id", "module", "topic", "prompt", "options", "answer", "explanation"},
		{"safety-10", "safety", "safety.alara", "ALARA stands for", "As low as reasonably achievable|Always lower all receiver amplification", "A", "The guiding safety principle."},
		{"qa-10", "qa", "", "A phantom tests", "Resolution | Patients | Billing", "1", ""},
		{},
		{"bad-1", "qa", "", "No options", "", "A", ""},
		{"bad-2", "qa", "", "Bad answer", "a|b", "maybe", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Questions, 2)
	assert.Len(t, res.Errors, 2)

	assert.Equal(t, 0, res.Questions[0].Answer)
	assert.Equal(t, "safety.alara", res.Questions[0].Topic)
	assert.Equal(t, []string{"Resolution", "Patients", "Billing"}, res.Questions[1].Options)
	assert.Equal(t, 0, res.Questions[1].Answer)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("questions.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"A", 0, false},
		{"c", 2, false},
		{"1", 0, false},
		{"4", 3, false},
		{"", 0, true},
		{"AB", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAnswer(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
