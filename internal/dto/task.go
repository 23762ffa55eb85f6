package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateTaskRequest defines the data needed to create a task.
type CreateTaskRequest struct {
	ProjectID            string     `json:"projectID" binding:"required"`
	Title                string     `json:"title" binding:"required"`
	AssigneeID           string     `json:"assigneeID" binding:"required"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes" binding:"gte=0"`
	Deadline             *time.Time `json:"deadline"`
}

// UpdateTaskRequest defines the fields allowed for updating a task.
type UpdateTaskRequest struct {
	Title                *string            `json:"title"`
	AssigneeID           *string            `json:"assigneeID"`
	Status               *domain.TaskStatus `json:"status" binding:"omitempty,oneof=todo in_progress done waiting_approval"`
	EstimatedTimeMinutes *int               `json:"estimatedTimeMinutes" binding:"omitempty,gte=0"`
	TimeSpentMinutes     *int               `json:"timeSpentMinutes" binding:"omitempty,gte=0"`
	Deadline             *time.Time         `json:"deadline"`
}

// TaskResponse mirrors domain.Task plus the derived late flag.
type TaskResponse struct {
	TaskID               string            `json:"taskID"`
	ProjectID            string            `json:"projectID"`
	Title                string            `json:"title"`
	AssigneeID           string            `json:"assigneeID"`
	Status               domain.TaskStatus `json:"status"`
	EstimatedTimeMinutes int               `json:"estimatedTimeMinutes"`
	TimeSpentMinutes     int               `json:"timeSpentMinutes"`
	Deadline             *time.Time        `json:"deadline"`
	IsLate               bool              `json:"isLate"`
	CreatedAt            time.Time         `json:"createdAt"`
	LastUpdatedAt        time.Time         `json:"lastUpdatedAt"`
}

// ToTaskResponse converts a domain.Task to its DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:               t.TaskID,
		ProjectID:            t.ProjectID,
		Title:                t.Title,
		AssigneeID:           t.AssigneeID,
		Status:               t.Status,
		EstimatedTimeMinutes: t.EstimatedTimeMinutes,
		TimeSpentMinutes:     t.TimeSpentMinutes,
		Deadline:             t.Deadline,
		IsLate:               t.IsLate(time.Now()),
		CreatedAt:            t.CreatedAt,
		LastUpdatedAt:        t.LastUpdatedAt,
	}
}

// ToListTaskResponse converts a slice of domain.Task to DTOs.
func ToListTaskResponse(tasks []domain.Task) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i := range tasks {
		res[i] = ToTaskResponse(&tasks[i])
	}
	return res
}

// ListTasksParams defines query parameters for listing tasks.
type ListTasksParams struct {
	ProjectID  string `form:"projectID"`
	AssigneeID string `form:"assigneeID"`
	Status     string `form:"status"`
}
