package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all study progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases all progress; re-run with --yes to confirm")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := openProgress(cmd.Context(), st).Reset(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		if res.Warning != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", res.Warning)
			return nil
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
