package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// TaskSvcFacade defines operations on tasks.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, requester domain.Requester, req dto.CreateTaskRequest) (*domain.Task, error)
	GetTaskByID(ctx context.Context, requester domain.Requester, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, requester domain.Requester, params dto.ListTasksParams) ([]domain.Task, error)
	UpdateTask(ctx context.Context, requester domain.Requester, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, requester domain.Requester, taskID string) error
}
