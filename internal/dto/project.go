package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	ClientID string `json:"clientID" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// UpdateProjectRequest defines the fields allowed for updating a project.
type UpdateProjectRequest struct {
	Name   *string               `json:"name"`
	Status *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=ativo pausado concluido"`
}

// ProjectResponse mirrors domain.Project.
type ProjectResponse struct {
	ProjectID     string               `json:"projectID"`
	ClientID      string               `json:"clientID"`
	Name          string               `json:"name"`
	Status        domain.ProjectStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToProjectResponse converts a domain.Project to its DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		ClientID:      p.ClientID,
		Name:          p.Name,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProjectResponse converts a slice of domain.Project to DTOs.
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}
