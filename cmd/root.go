package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sonoprep",
	Short: "SPI ultrasound physics exam prep",
	Long:  "SonoPrep: a terminal study companion for the SPI ultrasound physics exam, with practice quizzes, a final exam, progress tracking and a knowledge-base tutor.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SONOPREP_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Extra question bank (.yaml or .xlsx) merged into the built-in one (overrides SONOPREP_QUESTIONS)")
	rootCmd.Flags().Bool("no-update-check", false, "Skip the background check for a newer release")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(artifactCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadDotEnv reads .env from the working directory when present. Variables
// already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SONOPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
