package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/llm"
	"github.com/abhisek/sonoprep/internal/progress"
	"github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/store"
)

// openStore opens the SQLite database selected by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openProgress loads the progress store from st. A failed load is only a
// warning: the learner starts from empty progress.
func openProgress(ctx context.Context, st *store.Store) *progress.Store {
	ps, err := progress.New(ctx, progress.NewKVPersister(st.KVRepo()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; starting with empty progress, nothing will be saved this session\n", err)
	}
	return ps
}

// loadBank returns the built-in question bank merged with the file named
// by --questions or SONOPREP_QUESTIONS.
func loadBank(cmd *cobra.Command) (*quiz.Bank, error) {
	path, _ := cmd.Flags().GetString("questions")
	if path == "" {
		path = os.Getenv("SONOPREP_QUESTIONS")
	}
	if path == "" {
		return quiz.Builtin(), nil
	}

	res, err := quiz.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", path, e)
	}
	bank, err := quiz.Builtin().Merge(res.Questions)
	if err != nil {
		return nil, fmt.Errorf("merge questions from %s: %w", path, err)
	}
	return bank, nil
}

// newProvider builds the LLM provider from the environment. It returns
// nil, nil when no provider is configured.
func newProvider(ctx context.Context, repo store.EventRepo) (llm.Provider, error) {
	cfg, err := llm.ResolveConfig()
	if errors.Is(err, llm.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, cfg, repo)
}

// newKB builds the knowledge-base service, falling back to the LLM
// backend when no proxy endpoint is configured.
func newKB(ctx context.Context, repo store.EventRepo) (kb.Service, error) {
	provider, err := newProvider(ctx, repo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: LLM provider not configured: %v\n", err)
	}
	return kb.New(kb.ConfigFromEnv(), provider)
}
