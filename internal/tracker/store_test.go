package tracker

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfreitag/workmate/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(context.Background(), db, slog.Default()), db
}

func TestSeedOnEmptyStore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.Len(t, s.ListProjects(ctx, ProjectFilter{}), 2)
	require.Len(t, s.ListRequirements(ctx, RequirementFilter{}), 5)
	require.Len(t, s.ListTasks(ctx, TaskFilter{}), 5)
	require.Len(t, s.ListMembers(ctx), 4)
}

func TestSeedNotRepeatedOnReload(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(ctx, db, slog.Default())
	s.AddProject(ctx, Project{Name: "Third", Status: StatusPlanned})

	reloaded := NewStore(ctx, db, slog.Default())
	projects := reloaded.ListProjects(ctx, ProjectFilter{})
	require.Len(t, projects, 3)
	require.Len(t, reloaded.ListMembers(ctx), 4)
}

func TestAddThenGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	added := s.AddTask(ctx, Task{
		ProjectID: "p1",
		Name:      "Write docs",
		Priority:  PriorityLow,
		Status:    TaskNotStarted,
		DueDate:   "2025-06-20",
	})
	require.NotEmpty(t, added.ID)

	got, err := s.GetTask(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetProject(ctx, "p999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetRequirement(ctx, "r999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetTask(ctx, "t999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetMember(ctx, "tm999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateShallowMerge(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	status := StatusOnHold
	team := []string{"tm1"}
	updated, err := s.UpdateProject(ctx, "p1", ProjectUpdate{
		Status: &status,
		Team:   &team,
	})
	require.NoError(t, err)
	require.Equal(t, StatusOnHold, updated.Status)
	// Team replaces wholesale, untouched fields survive.
	require.Equal(t, []string{"tm1"}, updated.Team)
	require.Equal(t, "Work Assistant", updated.Name)
	require.Equal(t, 65, updated.Progress)
}

func TestUpdateMissingLeavesCollectionUnchanged(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before := s.ListProjects(ctx, ProjectFilter{})
	name := "ghost"
	_, err := s.UpdateProject(ctx, "p999", ProjectUpdate{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, before, s.ListProjects(ctx, ProjectFilter{}))
}

func TestDeleteProjectCascades(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteProject(ctx, "p1"))

	_, err := s.GetProject(ctx, "p1")
	require.ErrorIs(t, err, ErrNotFound)
	require.Empty(t, s.ListRequirements(ctx, RequirementFilter{ProjectID: "p1"}))
	require.Empty(t, s.ListTasks(ctx, TaskFilter{ProjectID: "p1"}))
}

func TestDeleteRequirementCascadesTasks(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteRequirement(ctx, "r2"))
	require.Empty(t, s.ListTasks(ctx, TaskFilter{RequirementID: "r2"}))
	// Tasks on other requirements survive.
	require.NotEmpty(t, s.ListTasks(ctx, TaskFilter{RequirementID: "r1"}))
}

func TestDeleteMissing(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.DeleteProject(ctx, "p999"), ErrNotFound)
	require.ErrorIs(t, s.DeleteRequirement(ctx, "r999"), ErrNotFound)
	require.ErrorIs(t, s.DeleteTask(ctx, "t999"), ErrNotFound)
	require.ErrorIs(t, s.DeleteMember(ctx, "tm999"), ErrNotFound)
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.AddTask(ctx, Task{ProjectID: "p1", Name: "a", Status: TaskNotStarted})
	require.NoError(t, s.DeleteTask(ctx, first.ID))

	second := s.AddTask(ctx, Task{ProjectID: "p1", Name: "b", Status: TaskNotStarted})
	require.NotEqual(t, first.ID, second.ID)
}

func TestAddDoesNotValidateForeignKeys(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	r := s.AddRequirement(ctx, Requirement{
		ProjectID: "p999",
		Name:      "orphan",
		Priority:  PriorityLow,
		Status:    StatusPlanned,
	})
	got, err := s.GetRequirement(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "p999", got.ProjectID)
}

func TestListFilters(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	inProgress := s.ListProjects(ctx, ProjectFilter{Statuses: []ProjectStatus{StatusInProgress}})
	require.Len(t, inProgress, 1)
	require.Equal(t, "p1", inProgress[0].ID)

	byTeam := s.ListProjects(ctx, ProjectFilter{TeamMember: "tm3"})
	require.Len(t, byTeam, 1)
	require.Equal(t, "p1", byTeam[0].ID)

	highReqs := s.ListRequirements(ctx, RequirementFilter{ProjectID: "p1", Priority: PriorityHigh})
	require.Len(t, highReqs, 2)

	assigned := s.ListTasks(ctx, TaskFilter{Assignee: "tm4"})
	require.Len(t, assigned, 2)
}

func TestListTasksSortedByDueDate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tasks := s.ListTasks(ctx, TaskFilter{ProjectID: "p1"})
	require.Len(t, tasks, 5)
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	// t5 due 05-28, t1 due 05-30 18:00, t2 due 05-31, t3 due 06-01, t4 due 06-02
	require.Equal(t, []string{"t5", "t1", "t2", "t3", "t4"}, ids)
}

func TestRoundTripThroughStorage(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(ctx, db, slog.Default())
	added := s.AddProject(ctx, Project{
		Name:   "Reload me",
		Status: StatusPlanned,
		Team:   []string{"tm1", "tm2"},
	})

	reloaded := NewStore(ctx, db, slog.Default())
	require.Equal(t, s.Snapshot(ctx), reloaded.Snapshot(ctx))

	got, err := reloaded.GetProject(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	snap := s.Snapshot(ctx)
	ids := make([]string, 0, len(snap.Tasks))
	for _, task := range snap.Tasks {
		ids = append(ids, task.ID)
	}
	require.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, ids)
}
