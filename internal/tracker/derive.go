package tracker

import (
	"context"
	"fmt"
)

// DefaultUpcomingWindow is the default look-ahead for UpcomingTasks.
const DefaultUpcomingWindow = 7

// deadlineWindowDays is the look-ahead used when scoring workload.
const deadlineWindowDays = 3

// ProgressCount summarizes completion for one sub-metric.
type ProgressCount struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Progress  float64 `json:"progress"`
}

// ProgressReport combines requirement and task completion for a project.
type ProgressReport struct {
	Project      Project       `json:"project"`
	Requirements ProgressCount `json:"requirements"`
	Tasks        ProgressCount `json:"tasks"`
	Progress     float64       `json:"progress"`
}

// MemberWorkload scores one member's active task load:
// 3x high + 2x medium + 1x low + 2x deadlines due within three days.
type MemberWorkload struct {
	Member            TeamMember `json:"member"`
	Tasks             int        `json:"tasks"`
	HighPriority      int        `json:"high_priority"`
	MediumPriority    int        `json:"medium_priority"`
	LowPriority       int        `json:"low_priority"`
	UpcomingDeadlines int        `json:"upcoming_deadlines"`
	Score             int        `json:"score"`
}

// ProjectProgress computes completion percentages for one project. A
// project with no requirements (or no tasks) scores 0 for that
// sub-metric rather than failing; the overall figure is the mean of
// the two.
func (s *Store) ProjectProgress(ctx context.Context, projectID string) (ProgressReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, err := s.getProjectLocked(projectID)
	if err != nil {
		return ProgressReport{}, err
	}

	report := ProgressReport{Project: project}
	for _, r := range s.requirements {
		if r.ProjectID != projectID {
			continue
		}
		report.Requirements.Total++
		if r.Status == StatusCompleted {
			report.Requirements.Completed++
		}
	}
	for _, t := range s.tasks {
		if t.ProjectID != projectID {
			continue
		}
		report.Tasks.Total++
		if t.Status == TaskCompleted {
			report.Tasks.Completed++
		}
	}

	if report.Requirements.Total > 0 {
		report.Requirements.Progress = float64(report.Requirements.Completed) / float64(report.Requirements.Total) * 100
	}
	if report.Tasks.Total > 0 {
		report.Tasks.Progress = float64(report.Tasks.Completed) / float64(report.Tasks.Total) * 100
	}
	report.Progress = (report.Requirements.Progress + report.Tasks.Progress) / 2

	return report, nil
}

// TeamWorkload returns one entry per team member, including members with
// no active tasks (score 0).
func (s *Store) TeamWorkload(ctx context.Context) []MemberWorkload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.nowFn()
	deadline := now.AddDate(0, 0, deadlineWindowDays)

	out := make([]MemberWorkload, 0, len(s.members))
	for _, m := range s.members {
		w := MemberWorkload{Member: m}
		for _, t := range s.tasks {
			if t.Assignee != m.ID {
				continue
			}
			if t.Status != TaskNotStarted && t.Status != TaskInProgress {
				continue
			}
			w.Tasks++
			switch t.Priority {
			case PriorityHigh:
				w.HighPriority++
			case PriorityMedium:
				w.MediumPriority++
			case PriorityLow:
				w.LowPriority++
			}
			if due, ok := parseWhen(t.DueDate); ok && !due.Before(now) && !due.After(deadline) {
				w.UpcomingDeadlines++
			}
		}
		w.Score = w.HighPriority*3 + w.MediumPriority*2 + w.LowPriority + w.UpcomingDeadlines*2
		out = append(out, w)
	}
	return out
}

// UpcomingTasks returns non-completed tasks due within [now, now+days].
func (s *Store) UpcomingTasks(ctx context.Context, days int) []Task {
	if days <= 0 {
		days = DefaultUpcomingWindow
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.nowFn()
	future := now.AddDate(0, 0, days)

	out := make([]Task, 0)
	for _, t := range s.tasks {
		if t.Status == TaskCompleted {
			continue
		}
		due, ok := parseWhen(t.DueDate)
		if !ok {
			continue
		}
		if !due.Before(now) && !due.After(future) {
			out = append(out, t)
		}
	}
	return out
}

// TodoTasks lists tasks still waiting for work (not started or in
// progress), narrowed by the remaining filter fields.
func (s *Store) TodoTasks(ctx context.Context, f TaskFilter) []Task {
	f.Statuses = []TaskStatus{TaskNotStarted, TaskInProgress}
	return s.ListTasks(ctx, f)
}

// Describe renders a one-line label for logging and CLI output.
func (t Task) Describe() string {
	return fmt.Sprintf("%s %s (%s, due %s)", t.ID, t.Name, t.Status, t.DueDate)
}
