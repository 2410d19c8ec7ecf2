package mcp

import "github.com/sfreitag/workmate/internal/tracker"

type listProjectsParams struct {
	Status string `json:"status,omitempty" jsonschema:"filter by project status (planned, in-progress, completed, on-hold, cancelled)"`
	Owner  string `json:"owner,omitempty" jsonschema:"filter by owner team member id"`
	Team   string `json:"team,omitempty" jsonschema:"filter by membership of a team member id"`
}

type getProjectParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type projectProgressParams struct {
	ID string `json:"id" jsonschema:"project id"`
}

type listRequirementsParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"filter by project id"`
	Status    string `json:"status,omitempty" jsonschema:"filter by requirement status"`
	Priority  string `json:"priority,omitempty" jsonschema:"filter by priority (high, medium, low)"`
	Assignee  string `json:"assignee,omitempty" jsonschema:"filter by assignee team member id"`
}

type listTasksParams struct {
	ProjectID     string `json:"project_id,omitempty" jsonschema:"filter by project id"`
	RequirementID string `json:"requirement_id,omitempty" jsonschema:"filter by requirement id"`
	Status        string `json:"status,omitempty" jsonschema:"filter by task status (not-started, in-progress, completed, on-hold, cancelled)"`
	Priority      string `json:"priority,omitempty" jsonschema:"filter by priority (high, medium, low)"`
	Assignee      string `json:"assignee,omitempty" jsonschema:"filter by assignee team member id"`
}

type createTaskParams struct {
	ProjectID     string `json:"project_id" jsonschema:"project the task belongs to"`
	RequirementID string `json:"requirement_id,omitempty" jsonschema:"requirement the task belongs to"`
	Name          string `json:"name" jsonschema:"short task name"`
	Description   string `json:"description,omitempty" jsonschema:"longer task description"`
	Priority      string `json:"priority,omitempty" jsonschema:"high, medium, or low"`
	Assignee      string `json:"assignee,omitempty" jsonschema:"assignee team member id"`
	DueDate       string `json:"due_date,omitempty" jsonschema:"due date, e.g. 2025-06-01 15:00"`
}

type updateTaskStatusParams struct {
	ID       string `json:"id" jsonschema:"task id"`
	Status   string `json:"status" jsonschema:"new status (not-started, in-progress, completed, on-hold, cancelled)"`
	Progress *int   `json:"progress,omitempty" jsonschema:"completion percentage 0-100"`
}

type upcomingTasksParams struct {
	Days int `json:"days,omitempty" jsonschema:"look-ahead window in days (default 7)"`
}

type askAssistantParams struct {
	Message string `json:"message" jsonschema:"question for the assistant"`
}

type listProjectsResponse struct {
	Projects []tracker.Project `json:"projects"`
}

type listRequirementsResponse struct {
	Requirements []tracker.Requirement `json:"requirements"`
}

type listTasksResponse struct {
	Tasks []tracker.Task `json:"tasks"`
}

type teamWorkloadResponse struct {
	Workload []tracker.MemberWorkload `json:"workload"`
}

type askAssistantResponse struct {
	Reply string `json:"reply"`
}
