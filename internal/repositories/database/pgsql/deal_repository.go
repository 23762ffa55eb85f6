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

const defaultDealListLimit = 50

type PgxDealRepository struct {
	db *pgxpool.Pool
}

func newPgxDealRepository(db *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{db: db}
}

var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

const dealColumns = `
	deal_id, organization_id, company, contact, value_cents, probability, stage,
	salesperson_id, project_id, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDeal(row pgx.Row) (*domain.Deal, error) {
	var d domain.Deal
	err := row.Scan(
		&d.DealID,
		&d.OrganizationID,
		&d.Company,
		&d.Contact,
		&d.ValueCents,
		&d.Probability,
		&d.Stage,
		&d.SalespersonID,
		&d.ProjectID,
		&d.Notes,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	query := `
        INSERT INTO deals (deal_id, organization_id, company, contact, value_cents, probability, stage,
            salesperson_id, project_id, notes, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		deal.DealID,
		deal.OrganizationID,
		deal.Company,
		deal.Contact,
		deal.ValueCents,
		deal.Probability,
		deal.Stage,
		deal.SalespersonID,
		deal.ProjectID,
		deal.Notes,
		deal.CreatedAt,
		deal.CreatedBy,
		deal.LastUpdatedAt,
		deal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, organizationID, dealID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals
		WHERE organization_id = $1 AND deal_id = $2 AND deleted_at IS NULL;`
	deal, err := scanDeal(r.db.QueryRow(ctx, query, organizationID, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deal by ID %s: %w", dealID, err)
	}
	return deal, nil
}

func (r *PgxDealRepository) FindDeals(ctx context.Context, organizationID string, filter portsrepo.ListDealsFilter) ([]domain.Deal, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultDealListLimit
	}

	query := `SELECT ` + dealColumns + `
		FROM deals
		WHERE organization_id = $1 AND deleted_at IS NULL`
	args := []any{organizationID}
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	if filter.SalespersonID != "" {
		args = append(args, filter.SalespersonID)
		query += fmt.Sprintf(" AND salesperson_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryDeals(ctx, query, args...)
}

func (r *PgxDealRepository) FindOpenDeals(ctx context.Context, organizationID string) ([]domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals
		WHERE organization_id = $1 AND deleted_at IS NULL
		  AND stage NOT IN ('closed_won', 'closed_lost')
		ORDER BY created_at DESC;`
	return r.queryDeals(ctx, query, organizationID)
}

func (r *PgxDealRepository) FindClosedWonInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Deal, error) {
	query := `SELECT ` + dealColumns + `
		FROM deals
		WHERE organization_id = $1 AND deleted_at IS NULL
		  AND stage = 'closed_won'
		  AND last_updated_at >= $2 AND last_updated_at <= $3
		ORDER BY last_updated_at ASC;`
	return r.queryDeals(ctx, query, organizationID, from, to)
}

func (r *PgxDealRepository) queryDeals(ctx context.Context, query string, args ...any) ([]domain.Deal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	defer rows.Close()

	deals := make([]domain.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		deals = append(deals, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deal rows: %w", err)
	}
	return deals, nil
}

func (r *PgxDealRepository) UpdateDeal(ctx context.Context, deal domain.Deal) error {
	query := `
		UPDATE deals
		SET company = $3, contact = $4, value_cents = $5, probability = $6,
		    salesperson_id = $7, project_id = $8, notes = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE organization_id = $1 AND deal_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		deal.OrganizationID,
		deal.DealID,
		deal.Company,
		deal.Contact,
		deal.ValueCents,
		deal.Probability,
		deal.SalespersonID,
		deal.ProjectID,
		deal.Notes,
		deal.LastUpdatedAt,
		deal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDealRepository) UpdateDealStage(ctx context.Context, organizationID, dealID string, stage domain.DealStage, updatedBy string) error {
	query := `
		UPDATE deals
		SET stage = $3, last_updated_at = now(), last_updated_by = $4
		WHERE organization_id = $1 AND deal_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, dealID, stage, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update deal stage: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDealRepository) DeleteDeal(ctx context.Context, organizationID, dealID string, deletedBy string) error {
	query := `
		UPDATE deals
		SET deleted_at = now(), last_updated_at = now(), last_updated_by = $3
		WHERE organization_id = $1 AND deal_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, dealID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
