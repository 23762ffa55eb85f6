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
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/google/uuid"
)

// clientService manages agency clients.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	aggCache   *cache.AggregateCache
}

// NewClientService creates the client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, aggCache *cache.AggregateCache) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo, aggCache: aggCache}
}

func (s *clientService) CreateClient(ctx context.Context, requester domain.Requester, req dto.CreateClientRequest) (*domain.Client, error) {
	if req.ContractEnd != nil && req.ContractEnd.Before(req.ContractStart) {
		return nil, fmt.Errorf("%w: contract end precedes contract start", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:        uuid.NewString(),
		OrganizationID:  requester.OrganizationID,
		Name:            req.Name,
		MonthlyFeeCents: req.MonthlyFeeCents,
		ContractStart:   req.ContractStart,
		ContractEnd:     req.ContractEnd,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "failed to create client", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindClient)
	}
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, requester domain.Requester, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, requester.OrganizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, requester domain.Requester) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx, requester.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, requester domain.Requester, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, requester.OrganizationID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.MonthlyFeeCents != nil {
		client.MonthlyFeeCents = req.MonthlyFeeCents
	}
	if req.ContractStart != nil {
		client.ContractStart = *req.ContractStart
	}
	if req.ContractEnd != nil {
		client.ContractEnd = req.ContractEnd
	}
	if client.ContractEnd != nil && client.ContractEnd.Before(client.ContractStart) {
		return nil, fmt.Errorf("%w: contract end precedes contract start", apperrors.ErrValidation)
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requester.ProfileID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindClient)
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, requester domain.Requester, clientID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.clientRepo.DeleteClient(ctx, requester.OrganizationID, clientID, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to delete client", slog.String("client_id", clientID))
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindClient)
	}
	return nil
}
