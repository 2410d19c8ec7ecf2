// Package tracker owns the four linked collections of the work assistant:
// team members, projects, requirements, and tasks. All mutation goes through
// Store, which persists every collection as one atomic group on each change.
package tracker

import "time"

// ProjectStatus is the lifecycle state of a project or requirement.
type ProjectStatus string

const (
	StatusPlanned    ProjectStatus = "planned"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on-hold"
	StatusCancelled  ProjectStatus = "cancelled"
)

// TaskStatus is the lifecycle state of a task. Tasks start as
// "not-started" rather than "planned".
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not-started"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on-hold"
	TaskCancelled  TaskStatus = "cancelled"
)

// Priority ranks requirements and tasks.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TeamMember is a leaf entity referenced by owner/assignee/team fields.
// Deleting a member does not cascade; dangling references are tolerated.
type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Project owns requirements and tasks by foreign key.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	StartDate   string        `json:"start_date,omitempty"`
	EndDate     string        `json:"end_date,omitempty"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"`
	Owner       string        `json:"owner,omitempty"`
	Team        []string      `json:"team,omitempty"`
}

// Requirement belongs to a project and owns zero or more tasks.
type Requirement struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"project_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Priority    Priority      `json:"priority"`
	Status      ProjectStatus `json:"status"`
	Owner       string        `json:"owner,omitempty"`
	Assignee    string        `json:"assignee,omitempty"`
}

// Task belongs to a project and optionally to a requirement
// (RequirementID is empty for project-level tasks).
type Task struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	RequirementID string     `json:"requirement_id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Priority      Priority   `json:"priority"`
	Status        TaskStatus `json:"status"`
	StartDate     string     `json:"start_date,omitempty"`
	DueDate       string     `json:"due_date,omitempty"`
	CompletedDate string     `json:"completed_date,omitempty"`
	Owner         string     `json:"owner,omitempty"`
	Assignee      string     `json:"assignee,omitempty"`
	Progress      int        `json:"progress"`
}

// TeamMemberUpdate is a partial update; nil fields are left unchanged.
type TeamMemberUpdate struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// ProjectUpdate is a partial update. Team replaces the whole list when
// set; there is no element-wise merge.
type ProjectUpdate struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	StartDate   *string        `json:"start_date,omitempty"`
	EndDate     *string        `json:"end_date,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
	Owner       *string        `json:"owner,omitempty"`
	Team        *[]string      `json:"team,omitempty"`
}

// RequirementUpdate is a partial update; nil fields are left unchanged.
type RequirementUpdate struct {
	ProjectID   *string        `json:"project_id,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Priority    *Priority      `json:"priority,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Owner       *string        `json:"owner,omitempty"`
	Assignee    *string        `json:"assignee,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	ProjectID     *string     `json:"project_id,omitempty"`
	RequirementID *string     `json:"requirement_id,omitempty"`
	Name          *string     `json:"name,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Priority      *Priority   `json:"priority,omitempty"`
	Status        *TaskStatus `json:"status,omitempty"`
	StartDate     *string     `json:"start_date,omitempty"`
	DueDate       *string     `json:"due_date,omitempty"`
	CompletedDate *string     `json:"completed_date,omitempty"`
	Owner         *string     `json:"owner,omitempty"`
	Assignee      *string     `json:"assignee,omitempty"`
	Progress      *int        `json:"progress,omitempty"`
}

// Snapshot is a raw, insertion-ordered copy of every collection. The
// context composer iterates it without the due-date sort applied to
// task listings.
type Snapshot struct {
	Members      []TeamMember
	Projects     []Project
	Requirements []Requirement
	Tasks        []Task
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWhen parses the loosely-typed date strings carried on tasks and
// projects ("2025-05-30", "2025-05-30 18:00", RFC 3339).
func parseWhen(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
