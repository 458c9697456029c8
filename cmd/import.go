package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/quiz"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a YAML or XLSX question file",
	Long: `Validate a YAML or XLSX question file and show how it would change the
question bank. Pass the file with --questions (or SONOPREP_QUESTIONS) to
study with it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := quiz.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Processed: %d\n", res.Processed)
		fmt.Printf("Skipped:   %d\n", res.Skipped)
		for _, e := range res.Errors {
			fmt.Printf("  %s\n", e)
		}

		bank, err := quiz.Builtin().Merge(res.Questions)
		if err != nil {
			return err
		}

		counts := bank.CountByModule()
		ids := make([]string, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Printf("\n%-28s  %s\n", "Module", "Questions")
		for _, id := range ids {
			name := id
			if m, err := course.GetModule(id); err == nil {
				name = m.Name
			}
			fmt.Printf("%-28s  %d\n", truncate(name, 28), counts[id])
		}
		fmt.Printf("\nTotal: %d questions\n", bank.Len())
		return nil
	},
}
