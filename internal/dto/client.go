package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a client.
type CreateClientRequest struct {
	Name            string     `json:"name" binding:"required"`
	MonthlyFeeCents *int64     `json:"monthlyFeeCents" binding:"omitempty,gte=0"`
	ContractStart   time.Time  `json:"contractStart" binding:"required"`
	ContractEnd     *time.Time `json:"contractEnd"`
}

// UpdateClientRequest defines the fields allowed for updating a client.
type UpdateClientRequest struct {
	Name            *string    `json:"name"`
	MonthlyFeeCents *int64     `json:"monthlyFeeCents" binding:"omitempty,gte=0"`
	ContractStart   *time.Time `json:"contractStart"`
	ContractEnd     *time.Time `json:"contractEnd"`
}

// ClientResponse mirrors domain.Client.
type ClientResponse struct {
	ClientID        string     `json:"clientID"`
	Name            string     `json:"name"`
	MonthlyFeeCents int64      `json:"monthlyFeeCents"`
	ContractStart   time.Time  `json:"contractStart"`
	ContractEnd     *time.Time `json:"contractEnd"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastUpdatedAt   time.Time  `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to its DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:        c.ClientID,
		Name:            c.Name,
		MonthlyFeeCents: c.MonthlyFee(),
		ContractStart:   c.ContractStart,
		ContractEnd:     c.ContractEnd,
		CreatedAt:       c.CreatedAt,
		LastUpdatedAt:   c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to DTOs.
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
