package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/kb"
	"github.com/abhisek/sonoprep/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the knowledge base a question",
	Long: `Ask the knowledge base a free-form question.

With --search the text is a search term; with --related it is a topic and
related material is listed instead of an answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		search, _ := cmd.Flags().GetBool("search")
		related, _ := cmd.Flags().GetBool("related")
		if search && related {
			return fmt.Errorf("--search and --related are mutually exclusive")
		}

		// LLM calls are logged when a database is available.
		var repo store.EventRepo
		if st, err := openStore(cmd); err == nil {
			defer st.Close()
			repo = st.EventRepo()
		}

		svc, err := newKB(cmd.Context(), repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), kb.ConfigFromEnv().Timeout)
		defer cancel()

		switch {
		case search:
			hits, err := svc.Search(ctx, text)
			if err != nil {
				return err
			}
			printSnippets(hits)
		case related:
			hits, err := svc.RelatedContent(ctx, text)
			if err != nil {
				return err
			}
			printSnippets(hits)
		default:
			ans, err := svc.Query(ctx, text)
			if err != nil {
				return err
			}
			fmt.Println(ans.Text)
			if len(ans.Sources) > 0 {
				fmt.Printf("\nSources: %s\n", strings.Join(ans.Sources, ", "))
			}
		}
		return nil
	},
}

func printSnippets(hits []kb.Snippet) {
	if len(hits) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, h := range hits {
		fmt.Printf("%d. %s\n", i+1, h.Title)
		if h.Snippet != "" {
			fmt.Printf("   %s\n", h.Snippet)
		}
	}
}

func init() {
	askCmd.Flags().Bool("search", false, "Search for material mentioning the text")
	askCmd.Flags().Bool("related", false, "List material related to the topic")
}
