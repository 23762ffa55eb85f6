package repositories

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProfileRepositoryFacade defines persistence operations for team members.
//
// Field-level access control is resolved here, not client-side: FindProfiles
// selects the full row set (admin view) while FindProfilesRedacted reads from
// a projection that never selects hourly cost, so restricted data cannot leak
// past the access layer.
type ProfileRepositoryFacade interface {
	SaveProfile(ctx context.Context, profile domain.Profile) error
	// CreateOwnerWithOrganization inserts the organization and its first
	// admin profile in one transaction, so a failed profile insert cannot
	// leave an orphan organization behind.
	CreateOwnerWithOrganization(ctx context.Context, org domain.Organization, profile domain.Profile) error
	FindProfileByID(ctx context.Context, organizationID, profileID string) (*domain.Profile, error)
	// FindProfileByIDRedacted reads a single profile through the redacted
	// projection, where hourly cost is never selected.
	FindProfileByIDRedacted(ctx context.Context, organizationID, profileID string) (*domain.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
	// FindProfileForAuth loads a profile by id alone, including the refresh
	// token hash and expiry. Auth flows resolve the organization from the row.
	FindProfileForAuth(ctx context.Context, profileID string) (*domain.Profile, error)
	FindProfiles(ctx context.Context, organizationID string) ([]domain.Profile, error)
	FindProfilesRedacted(ctx context.Context, organizationID string) ([]domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	UpdateCommissionConfig(ctx context.Context, organizationID, profileID string, percent decimal.Decimal, basis domain.CommissionBasis, updatedBy string) error
	UpdateRefreshToken(ctx context.Context, profileID, refreshTokenHash string, expiresAt *time.Time) error
	MarkProfileDeleted(ctx context.Context, organizationID, profileID string, deletedBy string, deletedAt time.Time) error
}
