package services

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates access/refresh token pairs.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, profile *domain.Profile) (string, time.Time, error)
	ValidateAndParseRefreshToken(ctx context.Context, profileID, refreshTokenString string) (*domain.Profile, error)
}

// GoogleOAuthHandlerSvcFacade covers the Google login flow.
type GoogleOAuthHandlerSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// APITokenSvc manages machine tokens for webhook callers.
type APITokenSvc interface {
	CreateToken(ctx context.Context, requester domain.Requester, req dto.CreateAPITokenRequest) (*dto.CreateAPITokenResponse, error)
	ListTokens(ctx context.Context, requester domain.Requester) ([]domain.APIToken, error)
	RevokeToken(ctx context.Context, requester domain.Requester, tokenID string) error
	// ValidateToken resolves a raw token to the requester identity it was
	// minted for, touching last-used on success.
	ValidateToken(ctx context.Context, rawToken string) (*domain.Requester, error)
}
