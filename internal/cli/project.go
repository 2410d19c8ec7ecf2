package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/tracker"
)

// ProjectCmd returns the project command group.
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectShowCmd())
	cmd.AddCommand(projectAddCmd())
	cmd.AddCommand(projectRemoveCmd())
	cmd.AddCommand(projectProgressCmd())
	return cmd
}

func projectListCmd() *cobra.Command {
	var status, owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			filter := tracker.ProjectFilter{Owner: owner}
			if status != "" {
				filter.Statuses = []tracker.ProjectStatus{tracker.ProjectStatus(status)}
			}

			for _, p := range env.store.ListProjects(cmd.Context(), filter) {
				fmt.Printf("%s %s %s  %d%%\n", p.ID, statusLabel(string(p.Status)), p.Name, p.Progress)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owner member id")
	return cmd
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			p, err := env.store.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s %s\n", p.ID, statusLabel(string(p.Status)), p.Name)
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
			if p.StartDate != "" || p.EndDate != "" {
				fmt.Printf("  %s → %s\n", p.StartDate, p.EndDate)
			}
			if p.Owner != "" {
				fmt.Printf("  owner: %s\n", p.Owner)
			}
			if len(p.Team) > 0 {
				fmt.Printf("  team: %s\n", strings.Join(p.Team, ", "))
			}
			return nil
		},
	}
}

func projectAddCmd() *cobra.Command {
	var description, owner, start, end string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			p := env.store.AddProject(cmd.Context(), tracker.Project{
				Name:        args[0],
				Description: description,
				Status:      tracker.StatusPlanned,
				Owner:       owner,
				StartDate:   start,
				EndDate:     end,
			})
			fmt.Printf("created %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&owner, "owner", "", "owner member id")
	cmd.Flags().StringVar(&start, "start", "", "start date")
	cmd.Flags().StringVar(&end, "end", "", "end date")
	return cmd
}

func projectRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}

func projectProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id>",
		Short: "Show completion percentages for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			report, err := env.store.ProjectProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", report.Project.ID, report.Project.Name)
			fmt.Printf("  requirements: %d/%d (%.0f%%)\n", report.Requirements.Completed, report.Requirements.Total, report.Requirements.Progress)
			fmt.Printf("  tasks:        %d/%d (%.0f%%)\n", report.Tasks.Completed, report.Tasks.Total, report.Tasks.Progress)
			fmt.Printf("  overall:      %.0f%%\n", report.Progress)
			return nil
		},
	}
}
