package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "workmate",
		Short: "workmate - work tracking for small teams",
		Long: `workmate tracks projects, requirements, and tasks, scores team
workload, and answers questions through a chat assistant grounded in
the workspace data. All commands operate directly on the local store.`,
	}

	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.RequirementCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.MemberCmd())
	rootCmd.AddCommand(cli.WorkloadCmd())
	rootCmd.AddCommand(cli.ChatCmd())
	rootCmd.AddCommand(cli.APIKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
