package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/tracker"
)

// TaskCmd returns the task command group.
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskStatusCmd())
	cmd.AddCommand(taskRemoveCmd())
	cmd.AddCommand(taskUpcomingCmd())
	return cmd
}

func printTask(t tracker.Task) {
	due := t.DueDate
	if due == "" {
		due = "-"
	}
	fmt.Printf("%s %s %s  (%s, due %s", t.ID, statusLabel(string(t.Status)), t.Name, priorityLabel(t.Priority), due)
	if t.Assignee != "" {
		fmt.Printf(", %s", t.Assignee)
	}
	fmt.Println(")")
}

func taskListCmd() *cobra.Command {
	var projectID, requirementID, status, assignee string
	var todo bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks sorted by due date",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			filter := tracker.TaskFilter{
				ProjectID:     projectID,
				RequirementID: requirementID,
				Assignee:      assignee,
			}
			if status != "" {
				filter.Statuses = []tracker.TaskStatus{tracker.TaskStatus(status)}
			}

			var tasks []tracker.Task
			if todo {
				tasks = env.store.TodoTasks(cmd.Context(), filter)
			} else {
				tasks = env.store.ListTasks(cmd.Context(), filter)
			}
			for _, t := range tasks {
				printTask(t)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "filter by project id")
	cmd.Flags().StringVar(&requirementID, "requirement", "", "filter by requirement id")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&assignee, "assignee", "", "filter by assignee member id")
	cmd.Flags().BoolVar(&todo, "todo", false, "only not-started and in-progress tasks")
	return cmd
}

func taskAddCmd() *cobra.Command {
	var requirementID, description, priority, assignee, due string

	cmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			t := env.store.AddTask(cmd.Context(), tracker.Task{
				ProjectID:     args[0],
				RequirementID: requirementID,
				Name:          args[1],
				Description:   description,
				Priority:      tracker.Priority(priority),
				Status:        tracker.TaskNotStarted,
				Assignee:      assignee,
				DueDate:       due,
			})
			fmt.Printf("created %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&requirementID, "requirement", "", "requirement id")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "medium", "high, medium, or low")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee member id")
	cmd.Flags().StringVar(&due, "due", "", "due date, e.g. 2025-06-01 15:00")
	return cmd
}

func taskStatusCmd() *cobra.Command {
	var progress int

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			status := tracker.TaskStatus(args[1])
			upd := tracker.TaskUpdate{Status: &status}
			if cmd.Flags().Changed("progress") {
				upd.Progress = &progress
			}

			t, err := env.store.UpdateTask(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			printTask(t)
			return nil
		},
	}

	cmd.Flags().IntVar(&progress, "progress", 0, "completion percentage 0-100")
	return cmd
}

func taskRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}

func taskUpcomingCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List tasks due within the next N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			for _, t := range env.store.UpcomingTasks(cmd.Context(), days) {
				printTask(t)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", tracker.DefaultUpcomingWindow, "look-ahead window in days")
	return cmd
}
