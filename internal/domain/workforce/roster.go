package workforce

// ProjectRef names a project a worker is assigned to
type ProjectRef struct {
	ID   int64
	Name string
}

// AssignmentLink is one row of the assignment-to-project join
type AssignmentLink struct {
	WorkerID    int64
	ProjectID   int64
	ProjectName string
}

// RosterEntry is a worker annotated with the distinct projects it is assigned to
type RosterEntry struct {
	Worker   Worker
	Projects []ProjectRef
}

// BuildRoster groups join rows per worker, keeping worker order and the first
// occurrence of each project. Workers without links get an empty, non-nil slice.
func BuildRoster(workers []Worker, links []AssignmentLink) []RosterEntry {
	byWorker := make(map[int64][]ProjectRef, len(workers))
	seen := make(map[[2]int64]struct{}, len(links))
	for _, l := range links {
		key := [2]int64{l.WorkerID, l.ProjectID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		byWorker[l.WorkerID] = append(byWorker[l.WorkerID], ProjectRef{ID: l.ProjectID, Name: l.ProjectName})
	}

	roster := make([]RosterEntry, 0, len(workers))
	for _, w := range workers {
		refs := byWorker[w.ID]
		if refs == nil {
			refs = []ProjectRef{}
		}
		roster = append(roster, RosterEntry{Worker: w, Projects: refs})
	}
	return roster
}
