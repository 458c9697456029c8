package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/course"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics and module progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		bank, err := loadBank(cmd)
		if err != nil {
			return err
		}
		ps := openProgress(cmd.Context(), st)
		s := ps.Stats()

		final := "not taken"
		if s.FinalExamScore != nil {
			final = fmt.Sprintf("%d%% (%d attempts)", *s.FinalExamScore, s.FinalExamAttempts)
		}
		last := "never"
		if s.LastStudyDate != nil {
			last = s.LastStudyDate.Local().Format("2006-01-02 15:04")
		}

		fmt.Printf("Level:          %d (%d XP, %d to next level)\n", s.Level, s.XP, s.XPToNextLevel)
		fmt.Printf("Answered:       %d (%d correct, %d%% accuracy)\n", s.Answered, s.Correct, s.Accuracy)
		fmt.Printf("Streak:         %d (best %d)\n", s.CurrentStreak, s.BestStreak)
		fmt.Printf("Study time:     %dm %02ds\n", s.StudySeconds/60, s.StudySeconds%60)
		fmt.Printf("Quizzes:        %d (average %d%%)\n", s.QuizzesTaken, s.AverageQuizScore)
		fmt.Printf("Final exam:     %s\n", final)
		fmt.Printf("Topics done:    %d\n", s.TopicsCompleted)
		fmt.Printf("Last studied:   %s\n", last)
		fmt.Println()

		fmt.Printf("%-3s %-36s  %-9s  %8s  %8s  %6s  %6s\n",
			"", "Module", "Status", "Answered", "Accuracy", "Topics", "Best")
		fmt.Println(strings.Repeat("─", 88))
		reports := course.Report(ps, bank)
		for _, r := range reports {
			best := "-"
			if r.HasScore {
				best = fmt.Sprintf("%d%%", r.BestScore)
			}
			fmt.Printf("%-3s %-36s  %-9s  %7d%%  %7d%%  %3d/%-2d  %6s\n",
				r.Status.Icon(), truncate(r.Module.Name, 36), r.Status.Label(),
				r.Progress, r.Accuracy, r.TopicsDone, r.TopicsTotal, best)
		}

		if rec, ok := course.Recommended(reports); ok {
			fmt.Printf("\nRecommended next: %s\n", rec.Module.Name)
		}
		return nil
	},
}
