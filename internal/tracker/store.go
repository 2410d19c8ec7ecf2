package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sfreitag/workmate/internal/storage"
)

// sequences holds the monotonic id counters. Counters only ever grow, so
// ids are never reused after a deletion.
type sequences struct {
	Member      int `json:"member"`
	Project     int `json:"project"`
	Requirement int `json:"requirement"`
	Task        int `json:"task"`
}

// Store is the entity store. It keeps the collections in memory and
// mirrors every mutation to durable storage as one atomic group.
type Store struct {
	kv     storage.KV
	logger *slog.Logger
	nowFn  func() time.Time

	mu           sync.RWMutex
	members      []TeamMember
	projects     []Project
	requirements []Requirement
	tasks        []Task
	seq          sequences
}

// NewStore loads the persisted collections. A missing or corrupt
// collection resets to empty with a logged warning; load problems are
// never fatal. An empty project collection triggers the seed dataset.
func NewStore(ctx context.Context, kv storage.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		kv:     kv,
		logger: logger,
		nowFn:  time.Now,
	}

	loadCollection(ctx, s, storage.KeyTeamMembers, &s.members)
	loadCollection(ctx, s, storage.KeyProjects, &s.projects)
	loadCollection(ctx, s, storage.KeyRequirements, &s.requirements)
	loadCollection(ctx, s, storage.KeyTasks, &s.tasks)
	loadCollection(ctx, s, storage.KeySequences, &s.seq)

	// Counters for data written before sequence tracking existed.
	if s.seq == (sequences{}) {
		s.seq = sequences{
			Member:      len(s.members),
			Project:     len(s.projects),
			Requirement: len(s.requirements),
			Task:        len(s.tasks),
		}
	}

	if len(s.projects) == 0 {
		s.seed(ctx)
	}

	return s
}

func loadCollection[T any](ctx context.Context, s *Store, key string, dst *T) {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.Warn("load failed, resetting collection", "key", key, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("corrupt collection, resetting", "key", key, "error", err)
		var zero T
		*dst = zero
	}
}

// persist rewrites all four collections plus the id counters in a single
// transaction. Failures are logged and swallowed; they never interrupt
// the mutation that triggered them.
func (s *Store) persist(ctx context.Context) {
	entries := make(map[string][]byte, 5)
	for key, v := range map[string]any{
		storage.KeyTeamMembers:  s.members,
		storage.KeyProjects:     s.projects,
		storage.KeyRequirements: s.requirements,
		storage.KeyTasks:        s.tasks,
		storage.KeySequences:    s.seq,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Warn("marshal failed, skipping persist", "key", key, "error", err)
			return
		}
		entries[key] = data
	}
	if err := s.kv.PutAll(ctx, entries); err != nil {
		s.logger.Warn("persist failed", "error", err)
	}
}

// Snapshot returns insertion-ordered copies of every collection.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Members:      append([]TeamMember(nil), s.members...),
		Projects:     append([]Project(nil), s.projects...),
		Requirements: append([]Requirement(nil), s.requirements...),
		Tasks:        append([]Task(nil), s.tasks...),
	}
}

// --- Team members ---

// ListMembers returns all team members in insertion order.
func (s *Store) ListMembers(ctx context.Context) []TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TeamMember(nil), s.members...)
}

// GetMember fetches one member by id.
func (s *Store) GetMember(ctx context.Context, id string) (TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, nil
		}
	}
	return TeamMember{}, fmt.Errorf("team member %s: %w", id, ErrNotFound)
}

// AddMember assigns a fresh id, appends, and persists.
func (s *Store) AddMember(ctx context.Context, m TeamMember) TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Member++
	m.ID = "tm" + strconv.Itoa(s.seq.Member)
	s.members = append(s.members, m)
	s.persist(ctx)
	return m
}

// UpdateMember shallow-merges the non-nil fields over the stored record.
func (s *Store) UpdateMember(ctx context.Context, id string, upd TeamMemberUpdate) (TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID != id {
			continue
		}
		m := &s.members[i]
		if upd.Name != nil {
			m.Name = *upd.Name
		}
		if upd.Role != nil {
			m.Role = *upd.Role
		}
		if upd.Avatar != nil {
			m.Avatar = *upd.Avatar
		}
		s.persist(ctx)
		return *m, nil
	}
	return TeamMember{}, fmt.Errorf("team member %s: %w", id, ErrNotFound)
}

// DeleteMember removes a member. References from projects, requirements,
// and tasks are left dangling on purpose.
func (s *Store) DeleteMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("team member %s: %w", id, ErrNotFound)
}

// --- Projects ---

// ListProjects returns a filtered copy in insertion order.
func (s *Store) ListProjects(ctx context.Context, f ProjectFilter) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// GetProject fetches one project by id.
func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProjectLocked(id)
}

func (s *Store) getProjectLocked(id string) (Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// AddProject assigns a fresh id, appends, and persists. The owner and
// team references are not validated against the member collection.
func (s *Store) AddProject(ctx context.Context, p Project) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Project++
	p.ID = "p" + strconv.Itoa(s.seq.Project)
	s.projects = append(s.projects, p)
	s.persist(ctx)
	return p
}

// UpdateProject shallow-merges the non-nil fields. A Team value replaces
// the stored list wholesale.
func (s *Store) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		p := &s.projects[i]
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.StartDate != nil {
			p.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			p.EndDate = *upd.EndDate
		}
		if upd.Status != nil {
			p.Status = *upd.Status
		}
		if upd.Progress != nil {
			p.Progress = *upd.Progress
		}
		if upd.Owner != nil {
			p.Owner = *upd.Owner
		}
		if upd.Team != nil {
			p.Team = append([]string(nil), (*upd.Team)...)
		}
		s.persist(ctx)
		return *p, nil
	}
	return Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// DeleteProject removes the project and cascades to every requirement
// and task carrying its id.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	kept := s.requirements[:0]
	for _, r := range s.requirements {
		if r.ProjectID != id {
			kept = append(kept, r)
		}
	}
	s.requirements = kept

	keptTasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ProjectID != id {
			keptTasks = append(keptTasks, t)
		}
	}
	s.tasks = keptTasks

	s.persist(ctx)
	return nil
}

// --- Requirements ---

// ListRequirements returns a filtered copy in insertion order.
func (s *Store) ListRequirements(ctx context.Context, f RequirementFilter) []Requirement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Requirement, 0, len(s.requirements))
	for _, r := range s.requirements {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// GetRequirement fetches one requirement by id.
func (s *Store) GetRequirement(ctx context.Context, id string) (Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requirements {
		if r.ID == id {
			return r, nil
		}
	}
	return Requirement{}, fmt.Errorf("requirement %s: %w", id, ErrNotFound)
}

// AddRequirement assigns a fresh id, appends, and persists. The project
// reference is deliberately not validated.
func (s *Store) AddRequirement(ctx context.Context, r Requirement) Requirement {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Requirement++
	r.ID = "r" + strconv.Itoa(s.seq.Requirement)
	s.requirements = append(s.requirements, r)
	s.persist(ctx)
	return r
}

// UpdateRequirement shallow-merges the non-nil fields.
func (s *Store) UpdateRequirement(ctx context.Context, id string, upd RequirementUpdate) (Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requirements {
		if s.requirements[i].ID != id {
			continue
		}
		r := &s.requirements[i]
		if upd.ProjectID != nil {
			r.ProjectID = *upd.ProjectID
		}
		if upd.Name != nil {
			r.Name = *upd.Name
		}
		if upd.Description != nil {
			r.Description = *upd.Description
		}
		if upd.Priority != nil {
			r.Priority = *upd.Priority
		}
		if upd.Status != nil {
			r.Status = *upd.Status
		}
		if upd.Owner != nil {
			r.Owner = *upd.Owner
		}
		if upd.Assignee != nil {
			r.Assignee = *upd.Assignee
		}
		s.persist(ctx)
		return *r, nil
	}
	return Requirement{}, fmt.Errorf("requirement %s: %w", id, ErrNotFound)
}

// DeleteRequirement removes the requirement and cascades to its tasks.
func (s *Store) DeleteRequirement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.requirements {
		if s.requirements[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("requirement %s: %w", id, ErrNotFound)
	}
	s.requirements = append(s.requirements[:idx], s.requirements[idx+1:]...)

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.RequirementID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept

	s.persist(ctx)
	return nil
}

// --- Tasks ---

// ListTasks returns a filtered copy sorted ascending by due date.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter) []Task {
	s.mu.RLock()
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return dueBefore(out[i], out[j])
	})
	return out
}

// dueBefore orders tasks by parsed due date, falling back to a plain
// string comparison when a date cannot be parsed.
func dueBefore(a, b Task) bool {
	ta, oka := parseWhen(a.DueDate)
	tb, okb := parseWhen(b.DueDate)
	switch {
	case oka && okb:
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return a.DueDate < b.DueDate
	case oka != okb:
		return oka
	default:
		return a.DueDate < b.DueDate
	}
}

// GetTask fetches one task by id.
func (s *Store) GetTask(ctx context.Context, id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// AddTask assigns a fresh id, appends, and persists. Neither the project
// nor the requirement reference is validated.
func (s *Store) AddTask(ctx context.Context, t Task) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Task++
	t.ID = "t" + strconv.Itoa(s.seq.Task)
	s.tasks = append(s.tasks, t)
	s.persist(ctx)
	return t
}

// UpdateTask shallow-merges the non-nil fields.
func (s *Store) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if upd.ProjectID != nil {
			t.ProjectID = *upd.ProjectID
		}
		if upd.RequirementID != nil {
			t.RequirementID = *upd.RequirementID
		}
		if upd.Name != nil {
			t.Name = *upd.Name
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.StartDate != nil {
			t.StartDate = *upd.StartDate
		}
		if upd.DueDate != nil {
			t.DueDate = *upd.DueDate
		}
		if upd.CompletedDate != nil {
			t.CompletedDate = *upd.CompletedDate
		}
		if upd.Owner != nil {
			t.Owner = *upd.Owner
		}
		if upd.Assignee != nil {
			t.Assignee = *upd.Assignee
		}
		if upd.Progress != nil {
			t.Progress = *upd.Progress
		}
		s.persist(ctx)
		return *t, nil
	}
	return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, ErrNotFound)
}
