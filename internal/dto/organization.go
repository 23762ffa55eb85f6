package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// UpdateOrganizationRequest defines the fields an admin may change.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateOrganizationRequest struct {
	Name                  *string `json:"name"`
	TargetNetRevenueCents *int64  `json:"targetNetRevenueCents" binding:"omitempty,gte=0"`
	FixedCostCeilingCents *int64  `json:"fixedCostCeilingCents" binding:"omitempty,gte=0"`
}

// OrganizationResponse mirrors domain.Organization.
type OrganizationResponse struct {
	OrganizationID        string    `json:"organizationID"`
	Name                  string    `json:"name"`
	TargetNetRevenueCents int64     `json:"targetNetRevenueCents"`
	FixedCostCeilingCents int64     `json:"fixedCostCeilingCents"`
	CreatedAt             time.Time `json:"createdAt"`
	LastUpdatedAt         time.Time `json:"lastUpdatedAt"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:        org.OrganizationID,
		Name:                  org.Name,
		TargetNetRevenueCents: org.TargetNetRevenueCents,
		FixedCostCeilingCents: org.FixedCostCeilingCents,
		CreatedAt:             org.CreatedAt,
		LastUpdatedAt:         org.LastUpdatedAt,
	}
}
