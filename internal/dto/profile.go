package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProfileRequest defines the data needed to add a team member.
type CreateProfileRequest struct {
	Name                string                  `json:"name" binding:"required"`
	Email               string                  `json:"email" binding:"required,email"`
	Password            string                  `json:"password" binding:"required,min=8"`
	Role                domain.Role             `json:"role" binding:"required,oneof=admin member"`
	HourlyCostCents     *int64                  `json:"hourlyCostCents" binding:"omitempty,gte=0"`
	CommissionPercent   *decimal.Decimal        `json:"commissionPercent"`
	CommissionBasis     *domain.CommissionBasis `json:"commissionBasis" binding:"omitempty,oneof=sobre_faturamento sobre_margem"`
	WeeklyCapacityHours *int                    `json:"weeklyCapacityHours" binding:"omitempty,gte=1,lte=168"`
}

// UpdateProfileRequest defines the fields allowed for updating a profile.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateProfileRequest struct {
	Name                *string      `json:"name"`
	Role                *domain.Role `json:"role" binding:"omitempty,oneof=admin member"`
	HourlyCostCents     *int64       `json:"hourlyCostCents" binding:"omitempty,gte=0"`
	WeeklyCapacityHours *int         `json:"weeklyCapacityHours" binding:"omitempty,gte=1,lte=168"`
}

// UpdateCommissionConfigRequest updates a salesperson's commission settings.
// Changes are never retroactive: already-provisioned commissions keep the
// amounts they were created with.
type UpdateCommissionConfigRequest struct {
	CommissionPercent decimal.Decimal        `json:"commissionPercent" binding:"required"`
	CommissionBasis   domain.CommissionBasis `json:"commissionBasis" binding:"required,oneof=sobre_faturamento sobre_margem"`
}

// ProfileResponse is the outward view of a team member. HourlyCostCents is
// nil for requesters without the admin role.
type ProfileResponse struct {
	ProfileID           string                 `json:"profileID"`
	OrganizationID      string                 `json:"organizationID"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	Role                domain.Role            `json:"role"`
	HourlyCostCents     *int64                 `json:"hourlyCostCents,omitempty"`
	CommissionPercent   decimal.Decimal        `json:"commissionPercent"`
	CommissionBasis     domain.CommissionBasis `json:"commissionBasis"`
	WeeklyCapacityHours int                    `json:"weeklyCapacityHours"`
	CreatedAt           time.Time              `json:"createdAt"`
	LastUpdatedAt       time.Time              `json:"lastUpdatedAt"`
}

// ToProfileResponse converts a domain.Profile to its DTO.
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID:           p.ProfileID,
		OrganizationID:      p.OrganizationID,
		Name:                p.Name,
		Email:               p.Email,
		Role:                p.Role,
		HourlyCostCents:     p.HourlyCostCents,
		CommissionPercent:   p.CommissionPercent,
		CommissionBasis:     p.CommissionBasis,
		WeeklyCapacityHours: p.EffectiveWeeklyCapacity(),
		CreatedAt:           p.CreatedAt,
		LastUpdatedAt:       p.LastUpdatedAt,
	}
}

// ToListProfileResponse converts a slice of domain.Profile to DTOs.
func ToListProfileResponse(profiles []domain.Profile) []ProfileResponse {
	res := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		res[i] = ToProfileResponse(&profiles[i])
	}
	return res
}
