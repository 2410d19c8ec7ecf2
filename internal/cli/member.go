package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/tracker"
)

// MemberCmd returns the member command group.
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}
	cmd.AddCommand(memberListCmd())
	cmd.AddCommand(memberAddCmd())
	cmd.AddCommand(memberRemoveCmd())
	return cmd
}

func memberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			for _, m := range env.store.ListMembers(cmd.Context()) {
				fmt.Printf("%s  %s (%s)\n", m.ID, m.Name, m.Role)
			}
			return nil
		},
	}
}

func memberAddCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			m := env.store.AddMember(cmd.Context(), tracker.TeamMember{
				Name: args[0],
				Role: role,
			})
			fmt.Printf("created %s\n", m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "member role")
	return cmd
}

func memberRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.store.DeleteMember(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
