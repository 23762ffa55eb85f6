package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `
	client_id, organization_id, name, monthly_fee_cents, contract_start, contract_end,
	created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.OrganizationID,
		&c.Name,
		&c.MonthlyFeeCents,
		&c.ContractStart,
		&c.ContractEnd,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
        INSERT INTO clients (client_id, organization_id, name, monthly_fee_cents, contract_start, contract_end,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.OrganizationID,
		client.Name,
		client.MonthlyFeeCents,
		client.ContractStart,
		client.ContractEnd,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, organizationID, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND client_id = $2 AND deleted_at IS NULL;`
	client, err := scanClient(r.db.QueryRow(ctx, query, organizationID, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	return client, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, organizationID string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC;`
	return r.queryClients(ctx, query, organizationID)
}

func (r *PgxClientRepository) FindClientsWithContractEndingBetween(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE organization_id = $1 AND deleted_at IS NULL
		  AND contract_end IS NOT NULL
		  AND contract_end >= $2 AND contract_end <= $3
		ORDER BY contract_end ASC;`
	return r.queryClients(ctx, query, organizationID, from, to)
}

func (r *PgxClientRepository) queryClients(ctx context.Context, query string, args ...any) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET name = $3, monthly_fee_cents = $4, contract_start = $5, contract_end = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE organization_id = $1 AND client_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		client.OrganizationID,
		client.ClientID,
		client.Name,
		client.MonthlyFeeCents,
		client.ContractStart,
		client.ContractEnd,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, organizationID, clientID string, deletedBy string) error {
	query := `
		UPDATE clients
		SET deleted_at = now(), last_updated_at = now(), last_updated_by = $3
		WHERE organization_id = $1 AND client_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, clientID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
