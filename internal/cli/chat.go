package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sfreitag/workmate/internal/chat"
)

// ChatCmd returns the chat command group.
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Ask the assistant about the workspace",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("message is required")
			}

			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			gateway := env.gateway(cmd.Context(), logger)

			reply, err := gateway.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}

	cmd.AddCommand(chatHistoryCmd())
	cmd.AddCommand(chatClearCmd())
	return cmd
}

func chatHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the conversation so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			history := chat.LoadHistory(cmd.Context(), env.db, logger)

			for _, turn := range history.Turns() {
				label := turn.Role
				if turn.Role == chat.RoleUser {
					label = color.New(color.FgHiCyan).Sprint("you")
				} else if turn.Role == chat.RoleAssistant {
					label = color.New(color.FgHiGreen).Sprint("assistant")
				}
				fmt.Printf("%s: %s\n", label, turn.Content)
			}
			return nil
		},
	}
}

func chatClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the conversation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			history := chat.LoadHistory(cmd.Context(), env.db, logger)
			history.Clear(cmd.Context())

			fmt.Println("history cleared")
			return nil
		},
	}
}

// APIKeyCmd returns the apikey command group.
func APIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage the chat vendor api key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key>",
		Short: "Save the vendor api key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := chat.NewCredentials(env.db).Set(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("api key saved")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Check whether an api key is saved",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			if _, err := chat.NewCredentials(env.db).Get(cmd.Context()); err != nil {
				fmt.Println("no api key saved")
				return nil
			}
			fmt.Println("api key is saved")
			return nil
		},
	})

	return cmd
}
