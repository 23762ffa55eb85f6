package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/google/uuid"
)

// taskService manages project tasks. Task estimates drive the workload
// analyzer, so mutations invalidate the task-derived aggregates.
type taskService struct {
	BaseService
	taskRepo    portsrepo.TaskRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewTaskService creates the task service.
func NewTaskService(
	taskRepo portsrepo.TaskRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	aggCache *cache.AggregateCache,
) portssvc.TaskSvcFacade {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		aggCache:    aggCache,
	}
}

func (s *taskService) CreateTask(ctx context.Context, requester domain.Requester, req dto.CreateTaskRequest) (*domain.Task, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, requester.OrganizationID, req.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to find project for task: %w", err)
	}
	if _, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, req.AssigneeID); err != nil {
		return nil, fmt.Errorf("failed to find assignee for task: %w", err)
	}

	now := time.Now()
	task := domain.Task{
		TaskID:               uuid.NewString(),
		OrganizationID:       requester.OrganizationID,
		ProjectID:            req.ProjectID,
		Title:                req.Title,
		AssigneeID:           req.AssigneeID,
		Status:               domain.TaskTodo,
		EstimatedTimeMinutes: req.EstimatedTimeMinutes,
		Deadline:             req.Deadline,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "failed to create task", slog.String("title", req.Title))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTask)
	}
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, requester domain.Requester, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, requester.OrganizationID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, requester domain.Requester, params dto.ListTasksParams) ([]domain.Task, error) {
	filter := portsrepo.ListTasksFilter{
		ProjectID:  params.ProjectID,
		AssigneeID: params.AssigneeID,
	}
	if params.Status != "" {
		status := domain.TaskStatus(params.Status)
		switch status {
		case domain.TaskTodo, domain.TaskInProgress, domain.TaskDone, domain.TaskWaitingApproval:
			filter.Status = status
		default:
			return nil, fmt.Errorf("%w: unknown task status %q", apperrors.ErrValidation, params.Status)
		}
	}

	tasks, err := s.taskRepo.FindTasks(ctx, requester.OrganizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		return []domain.Task{}, nil
	}
	return tasks, nil
}

func (s *taskService) UpdateTask(ctx context.Context, requester domain.Requester, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, requester.OrganizationID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task for update: %w", err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.AssigneeID != nil {
		if _, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, *req.AssigneeID); err != nil {
			return nil, fmt.Errorf("failed to find assignee for task: %w", err)
		}
		task.AssigneeID = *req.AssigneeID
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.EstimatedTimeMinutes != nil {
		task.EstimatedTimeMinutes = *req.EstimatedTimeMinutes
	}
	if req.TimeSpentMinutes != nil {
		task.TimeSpentMinutes = *req.TimeSpentMinutes
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = requester.ProfileID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "failed to update task", slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTask)
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, requester domain.Requester, taskID string) error {
	if err := s.taskRepo.DeleteTask(ctx, requester.OrganizationID, taskID, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to delete task", slog.String("task_id", taskID))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTask)
	}
	return nil
}
