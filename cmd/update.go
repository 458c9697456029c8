package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/release"
)

var updateCmd = &cobra.Command{
	Use:   "update [version]",
	Short: "Update sonoprep to the latest (or given) release",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := release.NewChecker(release.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		input := &release.UpdateInput{CurrentVersion: version}
		if len(args) == 1 {
			input.TargetVersion = args[0]
		}

		err := checker.Update(ctx, input, func(p release.UpdateProgress) {
			fmt.Println(p.Message)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, release.ErrDevBuild):
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		case errors.Is(err, release.ErrAlreadyLatest):
			fmt.Println("Already running the latest version.")
			return nil
		case errors.Is(err, release.ErrChecksum):
			return fmt.Errorf("%w; the download was discarded", err)
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo sonoprep update", err)
		}
		return err
	},
}
