package repositories

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// OrganizationRepositoryFacade defines persistence operations for
// organizations.
type OrganizationRepositoryFacade interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, org domain.Organization) error
}
