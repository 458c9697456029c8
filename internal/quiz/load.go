package quiz

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ImportResult describes one load of an external question file.
type ImportResult struct {
	Questions []Question
	Processed int
	Skipped   int
	Errors    []string
}

// Load reads questions from a YAML or XLSX file, chosen by extension.
// XLSX files use DefaultXLSXConfig.
func Load(path string) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		qs, err := LoadYAML(path)
		if err != nil {
			return nil, err
		}
		return &ImportResult{Questions: qs, Processed: len(qs)}, nil
	case ".xlsx":
		cfg := DefaultXLSXConfig()
		cfg.FilePath = path
		return LoadXLSX(cfg)
	default:
		return nil, fmt.Errorf("unsupported question file type %q (want .yaml, .yml or .xlsx)", filepath.Ext(path))
	}
}

type yamlBank struct {
	Questions []Question `yaml:"questions"`
}

// LoadYAML reads a document of the form
//
//	questions:
//	  - id: waves-10
//	    module: waves
//	    prompt: ...
//	    options: [a, b, c, d]
//	    answer: 2
//
// Every question is validated.
func LoadYAML(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	var doc yamlBank
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	var errs []string
	for _, q := range doc.Questions {
		if err := q.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s:\n  %s", ErrInvalidBank, filepath.Base(path), strings.Join(errs, "\n  "))
	}
	return doc.Questions, nil
}

// XLSXConfig maps spreadsheet columns to question fields.
type XLSXConfig struct {
	FilePath          string
	SheetName         string
	StartRow          int // 1-based; rows before it are headers
	IDColumn          string
	ModuleColumn      string
	TopicColumn       string
	PromptColumn      string
	OptionsColumn     string // options separated by OptionSeparator
	AnswerColumn      string // letter (A, B, ...) or 1-based number
	ExplanationColumn string
	OptionSeparator   string
}

// DefaultXLSXConfig returns the column layout
// id | module | topic | prompt | options | answer | explanation.
func DefaultXLSXConfig() XLSXConfig {
	return XLSXConfig{
		SheetName:         "Sheet1",
		StartRow:          2,
		IDColumn:          "A",
		ModuleColumn:      "B",
		TopicColumn:       "C",
		PromptColumn:      "D",
		OptionsColumn:     "E",
		AnswerColumn:      "F",
		ExplanationColumn: "G",
		OptionSeparator:   "|",
	}
}

// LoadXLSX reads questions from a spreadsheet. Invalid rows are skipped
// and reported in ImportResult.Errors.
func LoadXLSX(cfg XLSXConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}
	sep := cfg.OptionSeparator
	if sep == "" {
		sep = "|"
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < cfg.StartRow-1 || blankRow(row) {
			continue
		}
		result.Processed++
		q, err := questionFromRow(row, cfg, sep)
		if err == nil {
			err = q.Validate()
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Questions = append(result.Questions, q)
	}
	return result, nil
}

func questionFromRow(row []string, cfg XLSXConfig, sep string) (Question, error) {
	cell := func(col string) string {
		if col == "" {
			return ""
		}
		if idx := columnToIndex(col); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	q := Question{
		ID:          cell(cfg.IDColumn),
		ModuleID:    cell(cfg.ModuleColumn),
		Topic:       cell(cfg.TopicColumn),
		Prompt:      cell(cfg.PromptColumn),
		Explanation: cell(cfg.ExplanationColumn),
	}
	for _, o := range strings.Split(cell(cfg.OptionsColumn), sep) {
		if o = strings.TrimSpace(o); o != "" {
			q.Options = append(q.Options, o)
		}
	}
	answer, err := parseAnswer(cell(cfg.AnswerColumn))
	if err != nil {
		return q, err
	}
	q.Answer = answer
	return q, nil
}

// parseAnswer accepts "B" or "2" (both meaning the second option) and
// returns a zero-based index.
func parseAnswer(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("answer is empty")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), nil
		}
	}
	return 0, fmt.Errorf("answer %q is neither a letter nor a number", s)
}

func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
