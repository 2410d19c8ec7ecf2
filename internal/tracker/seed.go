package tracker

import "context"

// seed installs the starter dataset used when the store comes up with no
// projects. Callers see the same ids on every fresh database.
func (s *Store) seed(ctx context.Context) {
	s.logger.Info("empty store, creating sample data")

	s.members = []TeamMember{
		{ID: "tm1", Name: "Ava Chen", Role: "Frontend Developer", Avatar: "👩‍💻"},
		{ID: "tm2", Name: "Marcus Webb", Role: "Backend Developer", Avatar: "👨‍💻"},
		{ID: "tm3", Name: "Priya Nair", Role: "UI Designer", Avatar: "👩‍🎨"},
		{ID: "tm4", Name: "Daniel Ortiz", Role: "Product Manager", Avatar: "👨‍💼"},
	}

	s.projects = []Project{
		{
			ID:          "p1",
			Name:        "Work Assistant",
			Description: "A workspace for tracking projects, requirements and tasks",
			StartDate:   "2025-05-15",
			EndDate:     "2025-06-15",
			Status:      StatusInProgress,
			Progress:    65,
			Owner:       "tm4",
			Team:        []string{"tm1", "tm2", "tm3", "tm4"},
		},
		{
			ID:          "p2",
			Name:        "Customer Portal",
			Description: "Self-service portal for customer relationship management",
			StartDate:   "2025-06-01",
			EndDate:     "2025-07-30",
			Status:      StatusPlanned,
			Progress:    0,
			Owner:       "tm4",
			Team:        []string{"tm1", "tm2"},
		},
	}

	s.requirements = []Requirement{
		{
			ID: "r1", ProjectID: "p1",
			Name:        "Dashboard",
			Description: "Overview dashboard for projects, requirements and tasks",
			Priority:    PriorityHigh, Status: StatusInProgress,
			Owner: "tm4", Assignee: "tm1",
		},
		{
			ID: "r2", ProjectID: "p1",
			Name:        "Assistant integration",
			Description: "Wire the chat assistant into the tracked data",
			Priority:    PriorityHigh, Status: StatusInProgress,
			Owner: "tm4", Assignee: "tm2",
		},
		{
			ID: "r3", ProjectID: "p1",
			Name:        "Project management",
			Description: "Create, edit and delete projects",
			Priority:    PriorityMedium, Status: StatusPlanned,
			Owner: "tm4", Assignee: "tm1",
		},
		{
			ID: "r4", ProjectID: "p1",
			Name:        "Requirement management",
			Description: "Create, edit and delete requirements",
			Priority:    PriorityMedium, Status: StatusPlanned,
			Owner: "tm4", Assignee: "tm1",
		},
		{
			ID: "r5", ProjectID: "p1",
			Name:        "Task management",
			Description: "Create, edit and delete tasks",
			Priority:    PriorityMedium, Status: StatusPlanned,
			Owner: "tm4", Assignee: "tm1",
		},
	}

	s.tasks = []Task{
		{
			ID: "t1", ProjectID: "p1", RequirementID: "r1",
			Name:        "Dashboard design review",
			Description: "Review the dashboard UI mockups",
			Priority:    PriorityHigh, Status: TaskInProgress,
			StartDate: "2025-05-30", DueDate: "2025-05-30 18:00",
			Owner: "tm4", Assignee: "tm3",
		},
		{
			ID: "t2", ProjectID: "p1", RequirementID: "r2",
			Name:        "Frontend framework selection",
			Description: "Pick the frontend stack",
			Priority:    PriorityMedium, Status: TaskInProgress,
			StartDate: "2025-05-30", DueDate: "2025-05-31 10:00",
			Owner: "tm4", Assignee: "tm1",
		},
		{
			ID: "t3", ProjectID: "p1", RequirementID: "r2",
			Name:        "Requirements sign-off",
			Description: "Finalize the requirements document",
			Priority:    PriorityMedium, Status: TaskInProgress,
			StartDate: "2025-05-30", DueDate: "2025-06-01 15:00",
			Owner: "tm4", Assignee: "tm4",
		},
		{
			ID: "t4", ProjectID: "p1", RequirementID: "r2",
			Name:        "Weekly sync prep",
			Description: "Prepare the agenda for the team weekly",
			Priority:    PriorityLow, Status: TaskNotStarted,
			StartDate: "2025-05-30", DueDate: "2025-06-02 14:00",
			Owner: "tm4", Assignee: "tm4",
		},
		{
			ID: "t5", ProjectID: "p1", RequirementID: "r2",
			Name:        "Persistence layer spike",
			Description: "Evaluate durable storage options",
			Priority:    PriorityMedium, Status: TaskCompleted,
			StartDate: "2025-05-20", DueDate: "2025-05-28",
			CompletedDate: "2025-05-27",
			Owner:         "tm4", Assignee: "tm2", Progress: 100,
		},
	}

	s.seq = sequences{
		Member:      len(s.members),
		Project:     len(s.projects),
		Requirement: len(s.requirements),
		Task:        len(s.tasks),
	}

	s.persist(ctx)
}
