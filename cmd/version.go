package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/release"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("sonoprep", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		res, err := release.NewChecker().Check(ctx, &release.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Println("You are running the latest version.")
			return nil
		}
		fmt.Printf("Version %s is available: %s\nRun: sonoprep update\n", res.LatestVersion, res.ReleaseURL)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Also check for a newer release")
}
