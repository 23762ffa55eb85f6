package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils"
	"github.com/google/uuid"
)

// apiTokenService manages machine tokens. The webhook that reports deal
// closures authenticates with these. Tokens are random 256-bit values; only
// the SHA256 hash is stored, so lookup by hash is a single indexed query.
type apiTokenService struct {
	BaseService
	tokenRepo   portsrepo.APITokenRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewAPITokenService creates a new instance of apiTokenService.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade) portssvc.APITokenSvc {
	return &apiTokenService{tokenRepo: tokenRepo, profileRepo: profileRepo}
}

// CreateToken mints a new API token for the requester. The raw token is
// returned exactly once, in the response; afterwards only its hash exists.
func (s *apiTokenService) CreateToken(ctx context.Context, requester domain.Requester, req dto.CreateAPITokenRequest) (*dto.CreateAPITokenResponse, error) {
	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate api token: %w", err)
	}

	now := time.Now()
	token := domain.APIToken{
		ID:             uuid.NewString(),
		ProfileID:      requester.ProfileID,
		OrganizationID: requester.OrganizationID,
		Name:           req.Name,
		TokenHash:      utils.HashRefreshToken(rawToken),
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.tokenRepo.SaveToken(ctx, token); err != nil {
		s.LogError(ctx, err, "failed to save api token", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save api token: %w", err)
	}

	return &dto.CreateAPITokenResponse{
		ID:        token.ID,
		Name:      token.Name,
		Token:     rawToken,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}, nil
}

// ListTokens returns the requester's API tokens, without secrets.
func (s *apiTokenService) ListTokens(ctx context.Context, requester domain.Requester) ([]domain.APIToken, error) {
	tokens, err := s.tokenRepo.FindTokensByProfile(ctx, requester.OrganizationID, requester.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api tokens: %w", err)
	}
	if tokens == nil {
		return []domain.APIToken{}, nil
	}
	return tokens, nil
}

// RevokeToken deletes one of the requester's API tokens.
func (s *apiTokenService) RevokeToken(ctx context.Context, requester domain.Requester, tokenID string) error {
	if err := s.tokenRepo.RevokeToken(ctx, requester.OrganizationID, requester.ProfileID, tokenID); err != nil {
		s.LogError(ctx, err, "failed to revoke api token", slog.String("token_id", tokenID))
		return fmt.Errorf("failed to revoke api token: %w", err)
	}
	return nil
}

// ValidateToken resolves a raw token to the requester identity it was minted
// for. Expired or unknown tokens yield ErrUnauthorized; valid ones are
// touched with their last-used time.
func (s *apiTokenService) ValidateToken(ctx context.Context, rawToken string) (*domain.Requester, error) {
	if rawToken == "" {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.tokenRepo.FindTokenByHash(ctx, utils.HashRefreshToken(rawToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up api token: %w", err)
	}
	if token.IsExpired() {
		return nil, apperrors.ErrUnauthorized
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, token.OrganizationID, token.ProfileID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load profile for api token: %w", err)
	}

	if err := s.tokenRepo.TouchLastUsed(ctx, token.ID, time.Now()); err != nil {
		// Best effort: a failed last-used update must not fail the request.
		s.LogError(ctx, err, "failed to touch api token last-used", slog.String("token_id", token.ID))
	}

	return &domain.Requester{
		ProfileID:      profile.ProfileID,
		OrganizationID: profile.OrganizationID,
		Roles:          []string{string(profile.Role)},
	}, nil
}
