package repositories

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// ClientRepositoryFacade defines persistence operations for clients.
type ClientRepositoryFacade interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error)
	FindClients(ctx context.Context, organizationID string) ([]domain.Client, error)
	// FindClientsWithContractEndingBetween returns clients whose contract end
	// falls inside [from, to], ascending by end date. Clients without an end
	// date are never returned.
	FindClientsWithContractEndingBetween(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, organizationID, clientID string, deletedBy string) error
}
