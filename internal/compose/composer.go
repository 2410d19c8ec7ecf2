// Package compose renders the tracked data into the natural-language
// context block prepended to every outbound chat turn.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/sfreitag/workmate/internal/tracker"
)

// SnapshotSource supplies the raw collections, in storage order.
type SnapshotSource interface {
	Snapshot(ctx context.Context) tracker.Snapshot
}

// Composer turns a store snapshot into prompt text. Output is
// deterministic for a given snapshot; no size cap is applied.
type Composer struct {
	source SnapshotSource
}

// New creates a Composer reading from the given source.
func New(source SnapshotSource) *Composer {
	return &Composer{source: source}
}

// Compose enumerates every project, requirement, and task. Requirement
// and task lines resolve their owning project's name, falling back to
// "unknown" when the project has been deleted.
func (c *Composer) Compose(ctx context.Context) string {
	snap := c.source.Snapshot(ctx)

	projectNames := make(map[string]string, len(snap.Projects))
	for _, p := range snap.Projects {
		projectNames[p.ID] = p.Name
	}
	nameOf := func(projectID string) string {
		if name, ok := projectNames[projectID]; ok {
			return name
		}
		return "unknown"
	}

	var b strings.Builder
	b.WriteString("\n\n## Workspace data\n")
	b.WriteString("The workspace currently tracks the following data. Answer questions based on it.\n\n")

	fmt.Fprintf(&b, "### Projects (%d)\n", len(snap.Projects))
	for i, p := range snap.Projects {
		fmt.Fprintf(&b, "%d. %s\n   - status: %s\n   - progress: %d%%\n   - end date: %s\n",
			i+1, p.Name, p.Status, p.Progress, p.EndDate)
	}

	fmt.Fprintf(&b, "\n### Requirements (%d)\n", len(snap.Requirements))
	for i, r := range snap.Requirements {
		fmt.Fprintf(&b, "%d. %s (project: %s)\n   - priority: %s\n   - status: %s\n",
			i+1, r.Name, nameOf(r.ProjectID), r.Priority, r.Status)
	}

	fmt.Fprintf(&b, "\n### Tasks (%d)\n", len(snap.Tasks))
	for i, t := range snap.Tasks {
		fmt.Fprintf(&b, "%d. %s (project: %s)\n   - status: %s\n   - due: %s\n",
			i+1, t.Name, nameOf(t.ProjectID), t.Status, t.DueDate)
	}

	return b.String()
}
