package compose

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfreitag/workmate/internal/tracker"
)

type staticSource struct {
	snap tracker.Snapshot
}

func (s staticSource) Snapshot(context.Context) tracker.Snapshot { return s.snap }

func TestComposeListsEverything(t *testing.T) {
	c := New(staticSource{snap: tracker.Snapshot{
		Projects: []tracker.Project{
			{ID: "p1", Name: "Work Assistant", Status: tracker.StatusInProgress, Progress: 65, EndDate: "2025-06-15"},
		},
		Requirements: []tracker.Requirement{
			{ID: "r1", ProjectID: "p1", Name: "Dashboard", Priority: tracker.PriorityHigh, Status: tracker.StatusInProgress},
		},
		Tasks: []tracker.Task{
			{ID: "t1", ProjectID: "p1", Name: "Design review", Status: tracker.TaskInProgress, DueDate: "2025-05-30 18:00"},
		},
	}})

	out := c.Compose(context.Background())
	require.Contains(t, out, "### Projects (1)")
	require.Contains(t, out, "Work Assistant")
	require.Contains(t, out, "progress: 65%")
	require.Contains(t, out, "end date: 2025-06-15")
	require.Contains(t, out, "Dashboard (project: Work Assistant)")
	require.Contains(t, out, "priority: high")
	require.Contains(t, out, "Design review (project: Work Assistant)")
	require.Contains(t, out, "due: 2025-05-30 18:00")
}

func TestComposeUnknownProject(t *testing.T) {
	c := New(staticSource{snap: tracker.Snapshot{
		Requirements: []tracker.Requirement{
			{ID: "r1", ProjectID: "p-deleted", Name: "Orphaned", Priority: tracker.PriorityLow, Status: tracker.StatusPlanned},
		},
	}})

	out := c.Compose(context.Background())
	require.Contains(t, out, "Orphaned (project: unknown)")
}

func TestComposeDeterministic(t *testing.T) {
	src := staticSource{snap: tracker.Snapshot{
		Projects: []tracker.Project{
			{ID: "p1", Name: "A", Status: tracker.StatusPlanned},
			{ID: "p2", Name: "B", Status: tracker.StatusPlanned},
		},
	}}
	c := New(src)
	require.Equal(t, c.Compose(context.Background()), c.Compose(context.Background()))
}
