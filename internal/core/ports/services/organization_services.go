package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// OrganizationSvcFacade defines operations on the requester's organization.
type OrganizationSvcFacade interface {
	GetOrganization(ctx context.Context, requester domain.Requester) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, requester domain.Requester, req dto.UpdateOrganizationRequest) (*domain.Organization, error)
}
