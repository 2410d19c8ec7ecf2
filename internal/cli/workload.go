package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// WorkloadCmd returns the workload command.
func WorkloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workload",
		Short: "Score every team member's active load",
		Long: `Scores each member's active (not-started or in-progress) tasks:
3 points per high priority, 2 per medium, 1 per low, plus 2 per
deadline due within the next three days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			for _, w := range env.store.TeamWorkload(cmd.Context()) {
				score := fmt.Sprintf("%d", w.Score)
				switch {
				case w.Score >= 8:
					score = color.New(color.FgRed).Sprint(score)
				case w.Score >= 4:
					score = color.New(color.FgYellow).Sprint(score)
				}
				fmt.Printf("%s  %-14s score %s  (%d tasks: %d high, %d medium, %d low; %d due soon)\n",
					w.Member.ID, w.Member.Name, score, w.Tasks,
					w.HighPriority, w.MediumPriority, w.LowPriority, w.UpcomingDeadlines)
			}
			return nil
		},
	}
}
