package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// ClientSvcFacade defines operations on clients.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, requester domain.Requester, req dto.CreateClientRequest) (*domain.Client, error)
	GetClientByID(ctx context.Context, requester domain.Requester, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, requester domain.Requester) ([]domain.Client, error)
	UpdateClient(ctx context.Context, requester domain.Requester, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, requester domain.Requester, clientID string) error
}
