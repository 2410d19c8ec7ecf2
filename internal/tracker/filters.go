package tracker

// ProjectFilter narrows project listings. Conditions are ANDed; zero
// values match everything.
type ProjectFilter struct {
	Statuses   []ProjectStatus
	Owner      string
	TeamMember string // matches projects whose team contains this member id
}

func (f ProjectFilter) matches(p Project) bool {
	if len(f.Statuses) > 0 && !containsProjectStatus(f.Statuses, p.Status) {
		return false
	}
	if f.Owner != "" && p.Owner != f.Owner {
		return false
	}
	if f.TeamMember != "" && !containsString(p.Team, f.TeamMember) {
		return false
	}
	return true
}

// RequirementFilter narrows requirement listings.
type RequirementFilter struct {
	ProjectID string
	Statuses  []ProjectStatus
	Priority  Priority
	Owner     string
	Assignee  string
}

func (f RequirementFilter) matches(r Requirement) bool {
	if f.ProjectID != "" && r.ProjectID != f.ProjectID {
		return false
	}
	if len(f.Statuses) > 0 && !containsProjectStatus(f.Statuses, r.Status) {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.Owner != "" && r.Owner != f.Owner {
		return false
	}
	if f.Assignee != "" && r.Assignee != f.Assignee {
		return false
	}
	return true
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	ProjectID     string
	RequirementID string
	Statuses      []TaskStatus
	Priority      Priority
	Owner         string
	Assignee      string
}

func (f TaskFilter) matches(t Task) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.RequirementID != "" && t.RequirementID != f.RequirementID {
		return false
	}
	if len(f.Statuses) > 0 && !containsTaskStatus(f.Statuses, t.Status) {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Owner != "" && t.Owner != f.Owner {
		return false
	}
	if f.Assignee != "" && t.Assignee != f.Assignee {
		return false
	}
	return true
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsProjectStatus(list []ProjectStatus, want ProjectStatus) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsTaskStatus(list []TaskStatus, want TaskStatus) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
