package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	db *pgxpool.Pool
}

func newPgxOrganizationRepository(db *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{db: db}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const insertOrganizationQuery = `
        INSERT INTO organizations (organization_id, name, target_net_revenue_cents, fixed_cost_ceiling_cents, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `

func organizationInsertArgs(org domain.Organization) []any {
	return []any{
		org.OrganizationID,
		org.Name,
		org.TargetNetRevenueCents,
		org.FixedCostCeilingCents,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	}
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	_, err := r.db.Exec(ctx, insertOrganizationQuery, organizationInsertArgs(org)...)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, target_net_revenue_cents, fixed_cost_ceiling_cents, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var org domain.Organization
	err := r.db.QueryRow(ctx, query, organizationID).Scan(
		&org.OrganizationID,
		&org.Name,
		&org.TargetNetRevenueCents,
		&org.FixedCostCeilingCents,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, target_net_revenue_cents = $3, fixed_cost_ceiling_cents = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.TargetNetRevenueCents,
		org.FixedCostCeilingCents,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
