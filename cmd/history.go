package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/course"
	"github.com/abhisek/sonoprep/internal/quiz"
	"github.com/abhisek/sonoprep/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryStudyEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query study events: %w", err)
		}

		var rows []store.StudyEventRecord
		for _, e := range events {
			if e.Action != "end" {
				continue
			}
			rows = append(rows, e)
			if limit > 0 && len(rows) == limit {
				break
			}
		}
		if len(rows) == 0 {
			fmt.Println("No finished quizzes yet.")
			return nil
		}

		fmt.Printf("%-16s  %-28s  %5s  %-9s  %5s  %s\n",
			"Date", "Quiz", "Score", "Correct", "XP", "Time")
		fmt.Println(strings.Repeat("─", 80))
		for _, e := range rows {
			name := e.QuizID
			if e.Kind == string(quiz.KindFinalExam) {
				name = "Final exam"
			} else if m, err := course.GetModule(e.QuizID); err == nil {
				name = m.Name
			}
			fmt.Printf("%-16s  %-28s  %4d%%  %-9s  %5d  %d:%02d\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(name, 28),
				e.Score,
				fmt.Sprintf("%d/%d", e.Correct, e.Questions),
				e.XP,
				e.DurationSecs/60, e.DurationSecs%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of quizzes to show")
}
