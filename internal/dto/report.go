package dto

// PendingWorkDTO is the body of the pending-work report
type PendingWorkDTO struct {
	TotalPendingDays int64 `json:"totalPendingDays"`
}

// CompletedTasksDTO is the body of the last-week report
type CompletedTasksDTO struct {
	Count int       `json:"count"`
	Tasks []TaskDTO `json:"tasks"`
}

// ClosedGroupDTO is one bucket of the closed-tasks report. Details holds the
// grouped team, project or user when it still exists.
type ClosedGroupDTO struct {
	ID               string      `json:"id"`
	TotalClosedTasks int64       `json:"totalClosedTasks"`
	Details          interface{} `json:"details,omitempty"`
}
