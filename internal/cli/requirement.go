package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/tracker"
)

// RequirementCmd returns the requirement command group.
func RequirementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requirement",
		Aliases: []string{"req"},
		Short:   "Manage requirements",
	}
	cmd.AddCommand(requirementListCmd())
	cmd.AddCommand(requirementAddCmd())
	cmd.AddCommand(requirementRemoveCmd())
	return cmd
}

func requirementListCmd() *cobra.Command {
	var projectID, status, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			filter := tracker.RequirementFilter{ProjectID: projectID, Assignee: assignee}
			if status != "" {
				filter.Statuses = []tracker.ProjectStatus{tracker.ProjectStatus(status)}
			}

			for _, r := range env.store.ListRequirements(cmd.Context(), filter) {
				fmt.Printf("%s %s %s  (%s, %s)\n", r.ID, statusLabel(string(r.Status)), r.Name, r.ProjectID, priorityLabel(r.Priority))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "filter by project id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee member id")
	return cmd
}

func requirementAddCmd() *cobra.Command {
	var description, priority, assignee string

	cmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Create a requirement under a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			r := env.store.AddRequirement(cmd.Context(), tracker.Requirement{
				ProjectID:   args[0],
				Name:        args[1],
				Description: description,
				Priority:    tracker.Priority(priority),
				Status:      tracker.StatusPlanned,
				Assignee:    assignee,
			})
			fmt.Printf("created %s\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "requirement description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "high, medium, or low")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee member id")
	return cmd
}

func requirementRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a requirement and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.DeleteRequirement(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
