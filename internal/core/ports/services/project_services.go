package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// ProjectSvcFacade defines operations on projects.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, requester domain.Requester, req dto.CreateProjectRequest) (*domain.Project, error)
	GetProjectByID(ctx context.Context, requester domain.Requester, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, requester domain.Requester) ([]domain.Project, error)
	UpdateProject(ctx context.Context, requester domain.Requester, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, requester domain.Requester, projectID string) error
}
