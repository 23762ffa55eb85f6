package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateAPITokenRequest defines the data needed to mint an API token.
type CreateAPITokenRequest struct {
	Name      string     `json:"name" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// CreateAPITokenResponse returns the raw token exactly once, at creation.
type CreateAPITokenResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// APITokenResponse lists a token without its secret.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToAPITokenResponse converts a domain.APIToken to its DTO.
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListAPITokenResponse converts a slice of tokens to DTOs.
func ToListAPITokenResponse(tokens []domain.APIToken) []APITokenResponse {
	res := make([]APITokenResponse, len(tokens))
	for i := range tokens {
		res[i] = ToAPITokenResponse(&tokens[i])
	}
	return res
}
