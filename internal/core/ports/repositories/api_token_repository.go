package repositories

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// APITokenRepositoryFacade defines persistence operations for API tokens.
type APITokenRepositoryFacade interface {
	SaveToken(ctx context.Context, token domain.APIToken) error
	FindTokenByHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)
	FindTokensByProfile(ctx context.Context, organizationID, profileID string) ([]domain.APIToken, error)
	TouchLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error
	RevokeToken(ctx context.Context, organizationID, profileID, tokenID string) error
}
