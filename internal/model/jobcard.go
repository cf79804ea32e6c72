package model

import "time"

// JobCardStatus is the production state of a job card.
type JobCardStatus string

const (
	JobCardPending         JobCardStatus = "Pending"
	JobCardReady           JobCardStatus = "Ready"
	JobCardBlocked         JobCardStatus = "Blocked"
	JobCardPendingMaterial JobCardStatus = "PendingMaterial"
	JobCardInProgress      JobCardStatus = "InProgress"
	JobCardPaused          JobCardStatus = "Paused"
	JobCardCompleted       JobCardStatus = "Completed"
)

// JobCardStatuses lists every status in display order.
var JobCardStatuses = []JobCardStatus{
	JobCardPending,
	JobCardReady,
	JobCardBlocked,
	JobCardPendingMaterial,
	JobCardInProgress,
	JobCardPaused,
	JobCardCompleted,
}

// Valid reports whether s is one of the known statuses.
func (s JobCardStatus) Valid() bool {
	for _, known := range JobCardStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// SystemUser is stamped into UpdatedBy for changes made by dependency propagation.
const SystemUser = "system"

// JobCard is a schedulable unit of production work.
// DependsOnJobCardIDs and BlockedBy may hold either IDs or JobCardNos.
type JobCard struct {
	ID                    string        `json:"id" yaml:"id"`
	JobCardNo             string        `json:"job_card_no" yaml:"job_card_no"`
	OrderID               string        `json:"order_id,omitempty" yaml:"order_id,omitempty"`
	ProcessName           string        `json:"process_name,omitempty" yaml:"process_name,omitempty"`
	Status                JobCardStatus `json:"status" yaml:"status"`
	DependsOnJobCardIDs   []string      `json:"depends_on_job_card_ids" yaml:"depends_on_job_card_ids"`
	BlockedBy             []string      `json:"blocked_by" yaml:"blocked_by"`
	EstimatedTotalTimeMin float64       `json:"estimated_total_time_min" yaml:"estimated_total_time_min"`
	UpdatedAt             time.Time     `json:"updated_at" yaml:"updated_at"`
	UpdatedBy             string        `json:"updated_by,omitempty" yaml:"updated_by,omitempty"`
}

func NewJobCard(jobCardNo string, estimatedMin float64, dependsOn ...string) JobCard {
	deps := make([]string, len(dependsOn))
	copy(deps, dependsOn)
	return JobCard{
		ID:                    NewID(),
		JobCardNo:             jobCardNo,
		Status:                JobCardPending,
		DependsOnJobCardIDs:   deps,
		BlockedBy:             []string{},
		EstimatedTotalTimeMin: estimatedMin,
	}
}

// IsCompleted reports whether the card satisfies its dependents.
func (c JobCard) IsCompleted() bool {
	return c.Status == JobCardCompleted
}

// Clone returns a copy whose slices do not alias the receiver's.
func (c JobCard) Clone() JobCard {
	cp := c
	if c.DependsOnJobCardIDs != nil {
		cp.DependsOnJobCardIDs = append([]string(nil), c.DependsOnJobCardIDs...)
	}
	if c.BlockedBy != nil {
		cp.BlockedBy = append([]string(nil), c.BlockedBy...)
	}
	return cp
}

// Label returns the human-readable code, falling back to the ID.
func (c JobCard) Label() string {
	if c.JobCardNo != "" {
		return c.JobCardNo
	}
	return c.ID
}
