package repositories

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// ListTasksFilter narrows a task listing. Zero values mean "no filter".
type ListTasksFilter struct {
	ProjectID  string
	AssigneeID string
	Status     domain.TaskStatus
}

// TaskRepositoryFacade defines persistence operations for tasks.
type TaskRepositoryFacade interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, organizationID, taskID string) (*domain.Task, error)
	FindTasks(ctx context.Context, organizationID string, filter ListTasksFilter) ([]domain.Task, error)
	// FindActiveTasks returns tasks in todo or in_progress, the input for
	// workload utilization.
	FindActiveTasks(ctx context.Context, organizationID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, organizationID, taskID string, deletedBy string) error
}
