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

// projectService manages projects. A project always belongs to an existing
// client of the same organization.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewProjectService creates the project service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, aggCache *cache.AggregateCache) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, clientRepo: clientRepo, aggCache: aggCache}
}

func (s *projectService) CreateProject(ctx context.Context, requester domain.Requester, req dto.CreateProjectRequest) (*domain.Project, error) {
	// The client lookup doubles as the org-scope check.
	if _, err := s.clientRepo.FindClientByID(ctx, requester.OrganizationID, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to find client for project: %w", err)
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:      uuid.NewString(),
		OrganizationID: requester.OrganizationID,
		ClientID:       req.ClientID,
		Name:           req.Name,
		Status:         domain.ProjectActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "failed to create project", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProject)
	}
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, requester domain.Requester, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, requester.OrganizationID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, requester domain.Requester) ([]domain.Project, error) {
	projects, err := s.projectRepo.FindProjects(ctx, requester.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, requester domain.Requester, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, requester.OrganizationID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project for update: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = requester.ProfileID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "failed to update project", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProject)
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, requester domain.Requester, projectID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.projectRepo.DeleteProject(ctx, requester.OrganizationID, projectID, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to delete project", slog.String("project_id", projectID))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProject)
	}
	return nil
}
