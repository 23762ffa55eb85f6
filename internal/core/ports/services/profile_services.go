package services

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// ProfileSvcFacade defines operations on team-member profiles.
//
// ListProfiles selects the projection by role: admins receive the full rows,
// everyone else the redacted projection with hourly cost suppressed at the
// repository layer.
type ProfileSvcFacade interface {
	CreateProfile(ctx context.Context, requester domain.Requester, req dto.CreateProfileRequest) (*domain.Profile, error)
	GetProfileByID(ctx context.Context, requester domain.Requester, profileID string) (*domain.Profile, error)
	ListProfiles(ctx context.Context, requester domain.Requester) ([]domain.Profile, error)
	UpdateProfile(ctx context.Context, requester domain.Requester, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error)
	DeactivateProfile(ctx context.Context, requester domain.Requester, profileID string) error
}

// ProfileAuthReaderSvc is the narrow interface the auth flow needs.
type ProfileAuthReaderSvc interface {
	GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetProfileForToken(ctx context.Context, profileID string) (*domain.Profile, error)
	StoreRefreshToken(ctx context.Context, profileID, refreshTokenHash string, expiresAt *time.Time) error
	RegisterOwnerWithOrganization(ctx context.Context, req dto.RegisterRequest) (*domain.Profile, error)
}
