package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role defines the access level of a team member within their organization.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// CommissionBasis selects what a salesperson's commission is calculated over.
type CommissionBasis string

const (
	BasisSobreFaturamento CommissionBasis = "sobre_faturamento" // over gross revenue
	BasisSobreMargem      CommissionBasis = "sobre_margem"      // over margin
)

// DefaultWeeklyCapacityHours applies when a profile has no declared capacity.
const DefaultWeeklyCapacityHours = 40

// Profile represents a team member. It doubles as the authentication subject:
// team members log in with email and password.
//
// HourlyCostCents is access restricted. Non-admin requesters receive profiles
// read through the redacted projection, where the column is never selected;
// the field is then nil. See ProfileRepositoryFacade.
type Profile struct {
	ProfileID           string          `json:"profileID"` // Primary Key (UUID)
	OrganizationID      string          `json:"organizationID"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	PasswordHash        string          `json:"-"`
	Role                Role            `json:"role"`
	HourlyCostCents     *int64          `json:"hourlyCostCents,omitempty"` // restricted, centavos
	CommissionPercent   decimal.Decimal `json:"commissionPercent"`         // 0-100
	CommissionBasis     CommissionBasis `json:"commissionBasis"`
	WeeklyCapacityHours int             `json:"weeklyCapacityHours"` // 0 means unset, treated as 40

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"-"`
	AuditFields
}

// EffectiveWeeklyCapacity returns the declared weekly capacity, defaulting to
// DefaultWeeklyCapacityHours when unset.
func (p *Profile) EffectiveWeeklyCapacity() int {
	if p.WeeklyCapacityHours <= 0 {
		return DefaultWeeklyCapacityHours
	}
	return p.WeeklyCapacityHours
}

// HasCommission reports whether the profile has a non-zero commission
// percentage configured.
func (p *Profile) HasCommission() bool {
	return p.CommissionPercent.IsPositive()
}
