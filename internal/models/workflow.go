package models

import (
	"time"

	"github.com/lib/pq"
)

// WorkflowStatus represents the lifecycle state of a workflow
type WorkflowStatus string

const (
	WorkflowStatusRunning   WorkflowStatus = "Running"
	WorkflowStatusPaused    WorkflowStatus = "Paused"
	WorkflowStatusCompleted WorkflowStatus = "Completed"
)

// ValidStatuses defines the statuses a workflow may be created with
var ValidStatuses = map[WorkflowStatus]bool{
	WorkflowStatusRunning:   true,
	WorkflowStatusPaused:    true,
	WorkflowStatusCompleted: true,
}

// ToggleableStatuses defines the statuses reachable through a status toggle
var ToggleableStatuses = map[WorkflowStatus]bool{
	WorkflowStatusRunning: true,
	WorkflowStatusPaused:  true,
}

// Run outcome tags recorded in Workflow.Runs
const (
	RunSuccess = "success"
	RunPending = "pending"
	RunFailed  = "failed"
)

const (
	// DefaultSchedule fires every minute
	DefaultSchedule = "* * * * *"
	// DefaultNextRun is the display value for freshly created workflows
	DefaultNextRun = "Tomorrow"
)

// Workflow represents a scheduled workflow owned by a user
type Workflow struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	Status    WorkflowStatus `json:"status" db:"status"`
	Owner     string         `json:"owner" db:"owner"`
	IsPublic  bool           `json:"isPublic" db:"is_public"`
	Runs      pq.StringArray `json:"runs" db:"runs"`
	Schedule  string         `json:"schedule" db:"schedule"`
	NextRun   string         `json:"nextRun" db:"next_run"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// VisibleTo reports whether the caller may read the workflow
func (w *Workflow) VisibleTo(callerEmail string) bool {
	return w.IsPublic || w.Owner == callerEmail
}
