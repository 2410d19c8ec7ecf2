package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sfreitag/workmate/internal/tracker"
)

func registerTools(server *sdkmcp.Server, store *tracker.Store, assistant Assistant) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects, optionally filtered by status, owner, or team membership",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params listProjectsParams) (*sdkmcp.CallToolResult, any, error) {
		filter := tracker.ProjectFilter{Owner: params.Owner, TeamMember: params.Team}
		if params.Status != "" {
			filter.Statuses = []tracker.ProjectStatus{tracker.ProjectStatus(params.Status)}
		}
		return jsonResult(listProjectsResponse{Projects: store.ListProjects(ctx, filter)})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project by id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params getProjectParams) (*sdkmcp.CallToolResult, any, error) {
		project, err := store.GetProject(ctx, params.ID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return jsonResult(project)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_progress",
		Description: "Get completion percentages for one project: requirements done, tasks done, and the overall figure",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params projectProgressParams) (*sdkmcp.CallToolResult, any, error) {
		report, err := store.ProjectProgress(ctx, params.ID)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return jsonResult(report)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_requirements",
		Description: "List requirements, optionally filtered by project, status, priority, or assignee",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params listRequirementsParams) (*sdkmcp.CallToolResult, any, error) {
		filter := tracker.RequirementFilter{
			ProjectID: params.ProjectID,
			Priority:  tracker.Priority(params.Priority),
			Assignee:  params.Assignee,
		}
		if params.Status != "" {
			filter.Statuses = []tracker.ProjectStatus{tracker.ProjectStatus(params.Status)}
		}
		return jsonResult(listRequirementsResponse{Requirements: store.ListRequirements(ctx, filter)})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks sorted by due date, optionally filtered by project, requirement, status, priority, or assignee",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params listTasksParams) (*sdkmcp.CallToolResult, any, error) {
		filter := tracker.TaskFilter{
			ProjectID:     params.ProjectID,
			RequirementID: params.RequirementID,
			Priority:      tracker.Priority(params.Priority),
			Assignee:      params.Assignee,
		}
		if params.Status != "" {
			filter.Statuses = []tracker.TaskStatus{tracker.TaskStatus(params.Status)}
		}
		return jsonResult(listTasksResponse{Tasks: store.ListTasks(ctx, filter)})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a new task under a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params createTaskParams) (*sdkmcp.CallToolResult, any, error) {
		if params.Name == "" {
			return nil, nil, &APIError{Code: "INVALID_PARAMS", Message: "name is required"}
		}
		task := store.AddTask(ctx, tracker.Task{
			ProjectID:     params.ProjectID,
			RequirementID: params.RequirementID,
			Name:          params.Name,
			Description:   params.Description,
			Priority:      tracker.Priority(params.Priority),
			Status:        tracker.TaskNotStarted,
			Assignee:      params.Assignee,
			DueDate:       params.DueDate,
		})
		return jsonResult(task)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task_status",
		Description: "Change a task's status and optionally its progress percentage",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params updateTaskStatusParams) (*sdkmcp.CallToolResult, any, error) {
		status := tracker.TaskStatus(params.Status)
		upd := tracker.TaskUpdate{Status: &status, Progress: params.Progress}
		task, err := store.UpdateTask(ctx, params.ID, upd)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return jsonResult(task)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "team_workload",
		Description: "Score every team member's active load: task counts by priority plus deadlines due within three days",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		return jsonResult(teamWorkloadResponse{Workload: store.TeamWorkload(ctx)})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "upcoming_tasks",
		Description: "List non-completed tasks due within the next N days (default 7)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params upcomingTasksParams) (*sdkmcp.CallToolResult, any, error) {
		return jsonResult(listTasksResponse{Tasks: store.UpcomingTasks(ctx, params.Days)})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask the chat assistant a question; it answers with the current workspace data in context",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params askAssistantParams) (*sdkmcp.CallToolResult, any, error) {
		if assistant == nil {
			return nil, nil, &APIError{Code: "ASSISTANT_UNAVAILABLE", Message: "assistant is not configured", RecoveryHint: "Start the server with chat enabled"}
		}
		if params.Message == "" {
			return nil, nil, &APIError{Code: "INVALID_PARAMS", Message: "message is required"}
		}
		reply, err := assistant.Send(ctx, params.Message)
		if err != nil {
			return nil, nil, mapError(err)
		}
		return jsonResult(askAssistantResponse{Reply: reply})
	})
}

var errEncodeResult = errors.New("encode tool result")

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errEncodeResult, err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
