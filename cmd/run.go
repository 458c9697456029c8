package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/app"
	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/release"
	"github.com/abhisek/sonoprep/internal/screen"
	"github.com/abhisek/sonoprep/internal/speech"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}

	eventRepo := st.EventRepo()
	opts := app.Options{
		Deps: screen.Deps{
			Progress: openProgress(ctx, st),
			Bank:     bank,
			Events:   eventRepo,
			Banner:   speech.NewBanner(st.KVRepo()),
		},
		Version: version,
	}

	svc, err := newKB(ctx, eventRepo)
	switch {
	case err == nil:
		opts.Tutor = kb.NewTutor(svc)
	case errors.Is(err, kb.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, "Knowledge base not configured; the tutor will answer offline.")
	default:
		fmt.Fprintf(os.Stderr, "warning: knowledge base: %v\n", err)
	}

	if engine, err := speech.FindCommandEngine(); err == nil {
		opts.Speech = speech.NewController(engine)
	}

	if skip, _ := cmd.Flags().GetBool("no-update-check"); !skip && release.IsRelease(version) {
		opts.Checker = release.NewChecker()
	}

	return app.Run(opts)
}
