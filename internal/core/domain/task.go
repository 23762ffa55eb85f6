package domain

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/utils/timeutil"
)

// TaskStatus tracks a task through the delivery board.
type TaskStatus string

const (
	TaskTodo            TaskStatus = "todo"
	TaskInProgress      TaskStatus = "in_progress"
	TaskDone            TaskStatus = "done"
	TaskWaitingApproval TaskStatus = "waiting_approval"
)

// IsActive reports whether the task still consumes capacity.
func (s TaskStatus) IsActive() bool {
	return s == TaskTodo || s == TaskInProgress
}

// Task is a unit of project work assigned to a team member. Estimates drive
// workload utilization.
type Task struct {
	TaskID               string     `json:"taskID"` // Primary Key (UUID)
	OrganizationID       string     `json:"organizationID"`
	ProjectID            string     `json:"projectID"`
	Title                string     `json:"title"`
	AssigneeID           string     `json:"assigneeID"` // ProfileID
	Status               TaskStatus `json:"status"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"`
	TimeSpentMinutes     int        `json:"timeSpentMinutes"`
	Deadline             *time.Time `json:"deadline"` // nullable
	AuditFields
}

// IsLate reports whether the task's deadline has passed while the task is
// neither done nor waiting approval.
func (t *Task) IsLate(today time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	if t.Status == TaskDone || t.Status == TaskWaitingApproval {
		return false
	}
	return timeutil.IsBeforeToday(today, *t.Deadline)
}
