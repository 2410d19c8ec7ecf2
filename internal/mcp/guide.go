package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const guideURI = "workmate://guide"

const guideContent = `# workmate: Usage guide

workmate tracks Projects → Requirements → Tasks for a small team, with
a chat assistant grounded in the workspace data.

## Orientation

1. ` + "`list_projects`" + ` shows every project with status and team.
2. ` + "`project_progress`" + ` reports completion: percentage of
   requirements done, percentage of tasks done, and the mean of the two.

## Browsing

- ` + "`list_requirements`" + ` and ` + "`list_tasks`" + ` accept filters:
  project_id, status, priority, assignee. Tasks come back sorted by due
  date.
- ` + "`upcoming_tasks`" + ` lists non-completed work due within the next
  N days (default 7).
- ` + "`team_workload`" + ` scores each member:
  3 × high + 2 × medium + 1 × low priority active tasks, plus
  2 × deadlines within three days.

## Writing

- ` + "`create_task`" + ` adds a task (status starts not-started).
- ` + "`update_task_status`" + ` changes status and optionally progress.
- Ids are short prefixed ordinals (p1, r3, t12) and are never reused.

## Assistant

` + "`ask_assistant`" + ` forwards a question to the configured chat
vendor with a snapshot of the workspace in the system prompt. It needs
a saved api key; without one the call fails with API_KEY_MISSING.
`

func registerGuideResource(server *sdkmcp.Server) {
	server.AddResource(&sdkmcp.Resource{
		URI:         guideURI,
		Name:        "usage_guide",
		Title:       "workmate usage guide",
		Description: "How to orient, browse, and write with the workmate tools.",
		MIMEType:    "text/markdown",
		Size:        int64(len(guideContent)),
	}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		uri := guideURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     guideContent,
			}},
		}, nil
	})
}
