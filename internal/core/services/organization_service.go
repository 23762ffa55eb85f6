package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// organizationService handles the requester's own organization. There is no
// cross-organization read path: the id always comes from the requester.
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates the organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) GetOrganization(ctx context.Context, requester domain.Requester) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, requester.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, requester domain.Requester, req dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, requester.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization for update: %w", err)
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.TargetNetRevenueCents != nil {
		org.TargetNetRevenueCents = *req.TargetNetRevenueCents
	}
	if req.FixedCostCeilingCents != nil {
		org.FixedCostCeilingCents = *req.FixedCostCeilingCents
	}
	org.LastUpdatedAt = time.Now()
	org.LastUpdatedBy = requester.ProfileID

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "failed to update organization")
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}
