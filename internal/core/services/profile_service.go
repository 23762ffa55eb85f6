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
	"github.com/agenciahub/agency_ops_app/internal/utils"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// profileService manages team-member profiles. Profiles double as auth
// subjects, so this service also implements the narrow reader interface the
// auth flow depends on.
type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewProfileService creates the profile service.
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade, aggCache *cache.AggregateCache) *profileService {
	return &profileService{profileRepo: profileRepo, aggCache: aggCache}
}

// Compile-time checks that profileService covers both facades.
var (
	_ portssvc.ProfileSvcFacade     = (*profileService)(nil)
	_ portssvc.ProfileAuthReaderSvc = (*profileService)(nil)
)

func (s *profileService) CreateProfile(ctx context.Context, requester domain.Requester, req dto.CreateProfileRequest) (*domain.Profile, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	profile := domain.Profile{
		ProfileID:      uuid.NewString(),
		OrganizationID: requester.OrganizationID,
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		Role:           req.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}
	if req.HourlyCostCents != nil {
		profile.HourlyCostCents = req.HourlyCostCents
	}
	if req.CommissionPercent != nil {
		profile.CommissionPercent = *req.CommissionPercent
	}
	if req.CommissionBasis != nil {
		profile.CommissionBasis = *req.CommissionBasis
	} else {
		profile.CommissionBasis = domain.BasisSobreFaturamento
	}
	if req.WeeklyCapacityHours != nil {
		profile.WeeklyCapacityHours = *req.WeeklyCapacityHours
	}
	if profile.CommissionPercent.IsNegative() || profile.CommissionPercent.GreaterThan(decimalHundred) {
		return nil, fmt.Errorf("%w: commission percent must be between 0 and 100", apperrors.ErrValidation)
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		s.LogError(ctx, err, "failed to create profile", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProfile)
	}
	return &profile, nil
}

// GetProfileByID selects the projection by role, the same way ListProfiles
// does: admins and self-reads get the full row, anyone else reads through the
// redacted projection where hourly cost is never selected.
func (s *profileService) GetProfileByID(ctx context.Context, requester domain.Requester, profileID string) (*domain.Profile, error) {
	var (
		profile *domain.Profile
		err     error
	)
	if requester.IsAdmin() || requester.ProfileID == profileID {
		profile, err = s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, profileID)
	} else {
		profile, err = s.profileRepo.FindProfileByIDRedacted(ctx, requester.OrganizationID, profileID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// ListProfiles selects the projection by role: admins get the full rows, other
// requesters read through the redacted projection where hourly cost is never
// selected.
func (s *profileService) ListProfiles(ctx context.Context, requester domain.Requester) ([]domain.Profile, error) {
	var (
		profiles []domain.Profile
		err      error
	)
	if requester.IsAdmin() {
		profiles, err = s.profileRepo.FindProfiles(ctx, requester.OrganizationID)
	} else {
		profiles, err = s.profileRepo.FindProfilesRedacted(ctx, requester.OrganizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		return []domain.Profile{}, nil
	}
	return profiles, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, requester domain.Requester, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile for update: %w", err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.HourlyCostCents != nil {
		profile.HourlyCostCents = req.HourlyCostCents
	}
	if req.WeeklyCapacityHours != nil {
		profile.WeeklyCapacityHours = *req.WeeklyCapacityHours
	}
	profile.LastUpdatedAt = time.Now()
	profile.LastUpdatedBy = requester.ProfileID

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "failed to update profile", slog.String("profile_id", profileID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProfile)
	}
	return profile, nil
}

func (s *profileService) DeactivateProfile(ctx context.Context, requester domain.Requester, profileID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if requester.ProfileID == profileID {
		return fmt.Errorf("%w: cannot deactivate own profile", apperrors.ErrValidation)
	}
	if err := s.profileRepo.MarkProfileDeleted(ctx, requester.OrganizationID, profileID, requester.ProfileID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to deactivate profile", slog.String("profile_id", profileID))
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProfile)
	}
	return nil
}

// --- ProfileAuthReaderSvc implementation ---

// GetProfileByEmail looks a profile up for login. No organization scope: the
// email is globally unique and the organization comes from the stored row.
func (s *profileService) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return profile, nil
}

// GetProfileForToken loads the profile a refresh-token flow refers to,
// including refresh token hash and expiry.
func (s *profileService) GetProfileForToken(ctx context.Context, profileID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileForAuth(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for token: %w", err)
	}
	return profile, nil
}

// StoreRefreshToken persists the hash of a newly issued refresh token. An
// empty hash clears it (logout).
func (s *profileService) StoreRefreshToken(ctx context.Context, profileID, refreshTokenHash string, expiresAt *time.Time) error {
	if err := s.profileRepo.UpdateRefreshToken(ctx, profileID, refreshTokenHash, expiresAt); err != nil {
		s.LogError(ctx, err, "failed to store refresh token", slog.String("profile_id", profileID))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// RegisterOwnerWithOrganization creates a new organization together with its
// first admin profile. This is the only unauthenticated write path.
func (s *profileService) RegisterOwnerWithOrganization(ctx context.Context, req dto.RegisterRequest) (*domain.Profile, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	profileID := uuid.NewString()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.OrganizationName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     profileID,
			LastUpdatedAt: now,
			LastUpdatedBy: profileID,
		},
	}
	profile := domain.Profile{
		ProfileID:         profileID,
		OrganizationID:    org.OrganizationID,
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		Role:              domain.RoleAdmin,
		CommissionPercent: decimal.Zero,
		CommissionBasis:   domain.BasisSobreFaturamento,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     profileID,
			LastUpdatedAt: now,
			LastUpdatedBy: profileID,
		},
	}

	if err := s.profileRepo.CreateOwnerWithOrganization(ctx, org, profile); err != nil {
		s.LogError(ctx, err, "failed to register organization", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to register organization: %w", err)
	}

	s.LogInfo(ctx, "organization registered",
		slog.String("organization_id", org.OrganizationID),
		slog.String("owner_profile_id", profile.ProfileID))
	return &profile, nil
}
