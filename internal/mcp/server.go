// Package mcp exposes the work tracker to MCP clients: read and write
// tools over the store, derived reports, and the chat assistant.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sfreitag/workmate/internal/tracker"
)

// Assistant is the conversational surface behind the ask_assistant tool.
type Assistant interface {
	Send(ctx context.Context, message string) (string, error)
}

// Config contains server configuration.
type Config struct {
	Store *tracker.Store
	// Assistant may be nil; ask_assistant then reports it as unavailable.
	Assistant Assistant
	Logger    *slog.Logger
}

const serverInstructions = `workmate tracks Projects → Requirements → Tasks for a small team.

Core concepts:
- Project: a deliverable with a status, owner, and team member list.
- Requirement: a feature of one project, with priority and status.
- Task: a unit of work under a requirement, with assignee, due date, and progress.
- Deleting a project removes its requirements and tasks; deleting a requirement removes its tasks.

Typical flow:
1) Orient: list_projects, then project_progress for completion figures.
2) Browse: list_requirements / list_tasks with filters (project_id, status, assignee).
3) Plan: team_workload for per-member load scores, upcoming_tasks for near deadlines.
4) Write: create_task, update_task_status.
5) Ask: ask_assistant for a natural-language answer grounded in the current workspace data.

The usage guide lives at workmate://guide.
`

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "workmate",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerGuideResource(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Store, cfg.Assistant)

	return server
}
