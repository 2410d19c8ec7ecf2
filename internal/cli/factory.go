// Package cli implements the workmate command line. Commands open the
// local store directly rather than going through the HTTP API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/sfreitag/workmate/internal/chat"
	"github.com/sfreitag/workmate/internal/compose"
	"github.com/sfreitag/workmate/internal/config"
	"github.com/sfreitag/workmate/internal/storage"
	"github.com/sfreitag/workmate/internal/tracker"
)

// env holds the wired application pieces a command needs.
type env struct {
	cfg   config.Config
	db    *storage.DB
	store *tracker.Store
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	// CLI runs are short-lived; keep store logging quiet.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := tracker.NewStore(ctx, db, logger)

	return &env{cfg: cfg, db: db, store: store}, nil
}

func (e *env) Close() {
	e.db.Close()
}

func (e *env) gateway(ctx context.Context, logger *slog.Logger) *chat.Gateway {
	return chat.NewGateway(chat.GatewayConfig{
		Composer:    compose.New(e.store),
		History:     chat.LoadHistory(ctx, e.db, logger),
		Credentials: chat.NewCredentials(e.db),
		Client:      chat.NewClient(e.cfg.Chat.RelayURL, e.cfg.Chat.VendorURL, logger),
		PromptPath:  e.cfg.Chat.PromptPath,
		Model:       e.cfg.Chat.Model,
		Temperature: e.cfg.Chat.Temperature,
		MaxTokens:   e.cfg.Chat.MaxTokens,
		Logger:      logger,
	})
}

func statusLabel(status string) string {
	switch status {
	case "completed":
		return color.New(color.FgHiGreen).Sprintf("[%s]", status)
	case "in-progress":
		return color.New(color.FgHiCyan).Sprintf("[%s]", status)
	case "on-hold":
		return color.New(color.FgYellow).Sprintf("[%s]", status)
	case "cancelled":
		return color.New(color.FgHiBlack).Sprintf("[%s]", status)
	default:
		return fmt.Sprintf("[%s]", status)
	}
}

func priorityLabel(p tracker.Priority) string {
	switch p {
	case tracker.PriorityHigh:
		return color.New(color.FgRed).Sprint("high")
	case tracker.PriorityMedium:
		return color.New(color.FgYellow).Sprint("medium")
	case tracker.PriorityLow:
		return color.New(color.FgHiBlack).Sprint("low")
	default:
		return string(p)
	}
}
