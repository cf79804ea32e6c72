package depgraph

import "github.com/piwi3910/ShopFloor/internal/model"

// DependencyCheck describes whether a job card can start and how it relates
// to its neighbours.
type DependencyCheck struct {
	CanStart  bool            `json:"can_start"`
	BlockedBy []model.JobCard `json:"blocked_by"` // dependencies not yet completed
	Blocks    []model.JobCard `json:"blocks"`     // cards that depend on this one
}

// DeleteCheck is the answer to whether a job card may be removed.
type DeleteCheck struct {
	CanDelete      bool            `json:"can_delete"`
	Reason         string          `json:"reason,omitempty"`
	DependentCards []model.JobCard `json:"dependent_cards,omitempty"`
}

// ExecutionOrder is a topological leveling of job cards. Cards that could
// not be placed on any level are listed in Unscheduled.
type ExecutionOrder struct {
	Levels      [][]model.JobCard `json:"levels"`
	Unscheduled []model.JobCard   `json:"unscheduled,omitempty"`
}

// Complete reports whether every input card was placed on a level.
// An incomplete order means the dependency graph contains a cycle.
func (o ExecutionOrder) Complete() bool {
	return len(o.Unscheduled) == 0
}

// Scheduled returns the number of cards placed on a level.
func (o ExecutionOrder) Scheduled() int {
	n := 0
	for _, level := range o.Levels {
		n += len(level)
	}
	return n
}

// CriticalPath is the longest duration chain through the dependency graph.
// When Cyclic is set the graph contains a cycle and the path only covers the
// acyclic part that could be explored.
type CriticalPath struct {
	Path      []model.JobCard `json:"path"`
	TotalTime float64         `json:"total_time"`
	Cyclic    bool            `json:"cyclic"`
}

// Summary aggregates progress figures over a snapshot.
type Summary struct {
	Total                 int                         `json:"total"`
	ByStatus              map[model.JobCardStatus]int `json:"by_status"`
	CompletionPercent     float64                     `json:"completion_percent"`
	TotalEstimatedMin     float64                     `json:"total_estimated_min"`
	RemainingEstimatedMin float64                     `json:"remaining_estimated_min"`
	Startable             []string                    `json:"startable"` // labels of cards that can start now
}
