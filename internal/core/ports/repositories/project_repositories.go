package repositories

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// ProjectRepositoryFacade defines persistence operations for projects.
type ProjectRepositoryFacade interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.Project, error)
	FindProjects(ctx context.Context, organizationID string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, organizationID, projectID string, deletedBy string) error
}
