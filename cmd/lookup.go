package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/diagrams"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <text>",
	Short: "Find reference diagrams for a concept",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, d := range diagrams.Find(strings.Join(args, " ")) {
			fmt.Println(d.Title)
			fmt.Printf("  %s\n", d.Description)
			fmt.Printf("  %s\n", d.URL)
		}
	},
}

var artifactCmd = &cobra.Command{
	Use:   "artifact [term]",
	Short: "Look up imaging artifacts",
	Long:  "Look up imaging artifacts by name or keyword. With no term, every artifact is listed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		found := diagrams.Artifacts()
		if len(args) > 0 {
			term := strings.Join(args, " ")
			found = diagrams.FindArtifacts(term)
			if len(found) == 0 {
				return fmt.Errorf("no artifact matches %q", term)
			}
		}
		for i, a := range found {
			if i > 0 {
				fmt.Println()
			}
			printArtifact(a)
		}
		return nil
	},
}

func printArtifact(a diagrams.Artifact) {
	fmt.Println(a.Name)
	fmt.Printf("  Cause:      %s\n", a.Cause)
	fmt.Printf("  Appearance: %s\n", a.Appearance)
	if a.Remedy != "" {
		fmt.Printf("  Remedy:     %s\n", a.Remedy)
	}
}
