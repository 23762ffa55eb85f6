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
	"github.com/shopspring/decimal"
)

// PgxProfileRepository persists team-member profiles.
//
// Two row projections exist on purpose: the full projection selects
// hourly_cost_cents, the redacted one selects NULL in its place. The access
// decision happens at query selection time, so restricted data never leaves
// the database for a non-admin read.
type PgxProfileRepository struct {
	BaseRepository
}

func newPgxProfileRepository(db *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

const profileFullColumns = `
	profile_id, organization_id, name, email, password_hash, role,
	hourly_cost_cents, commission_percent, commission_basis, weekly_capacity_hours,
	refresh_token_hash, refresh_token_expiry_time,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

const profileRedactedColumns = `
	profile_id, organization_id, name, email, password_hash, role,
	NULL::bigint AS hourly_cost_cents, commission_percent, commission_basis, weekly_capacity_hours,
	refresh_token_hash, refresh_token_expiry_time,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var refreshHash *string
	err := row.Scan(
		&p.ProfileID,
		&p.OrganizationID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.HourlyCostCents,
		&p.CommissionPercent,
		&p.CommissionBasis,
		&p.WeeklyCapacityHours,
		&refreshHash,
		&p.RefreshTokenExpiryTime,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if refreshHash != nil {
		p.RefreshTokenHash = *refreshHash
	}
	return &p, nil
}

const insertProfileQuery = `
        INSERT INTO profiles (profile_id, organization_id, name, email, password_hash, role,
            hourly_cost_cents, commission_percent, commission_basis, weekly_capacity_hours,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `

func profileInsertArgs(profile domain.Profile) []any {
	return []any{
		profile.ProfileID,
		profile.OrganizationID,
		profile.Name,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
		profile.HourlyCostCents,
		profile.CommissionPercent,
		profile.CommissionBasis,
		profile.WeeklyCapacityHours,
		profile.CreatedAt,
		profile.CreatedBy,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
	}
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	_, err := r.Pool.Exec(ctx, insertProfileQuery, profileInsertArgs(profile)...)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", mapPgError(err))
	}
	return nil
}

// CreateOwnerWithOrganization runs the registration writes in one
// transaction: the organization row first, then its admin profile.
func (r *PgxProfileRepository) CreateOwnerWithOrganization(ctx context.Context, org domain.Organization, profile domain.Profile) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, insertOrganizationQuery, organizationInsertArgs(org)...); err != nil {
		return fmt.Errorf("failed to save organization: %w", mapPgError(err))
	}
	if _, err := tx.Exec(ctx, insertProfileQuery, profileInsertArgs(profile)...); err != nil {
		return fmt.Errorf("failed to save owner profile: %w", mapPgError(err))
	}
	return r.Commit(ctx, tx)
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, organizationID, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileFullColumns + `
		FROM profiles
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, organizationID, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID %s: %w", profileID, err)
	}
	return profile, nil
}

func (r *PgxProfileRepository) FindProfileByIDRedacted(ctx context.Context, organizationID, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileRedactedColumns + `
		FROM profiles
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, organizationID, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find redacted profile by ID %s: %w", profileID, err)
	}
	return profile, nil
}

func (r *PgxProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileFullColumns + `
		FROM profiles
		WHERE email = $1 AND deleted_at IS NULL;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}
	return profile, nil
}

func (r *PgxProfileRepository) FindProfileForAuth(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `SELECT ` + profileFullColumns + `
		FROM profiles
		WHERE profile_id = $1 AND deleted_at IS NULL;`
	profile, err := scanProfile(r.Pool.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile for auth %s: %w", profileID, err)
	}
	return profile, nil
}

func (r *PgxProfileRepository) findProfiles(ctx context.Context, organizationID, columns string) ([]domain.Profile, error) {
	query := `SELECT ` + columns + `
		FROM profiles
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

func (r *PgxProfileRepository) FindProfiles(ctx context.Context, organizationID string) ([]domain.Profile, error) {
	return r.findProfiles(ctx, organizationID, profileFullColumns)
}

func (r *PgxProfileRepository) FindProfilesRedacted(ctx context.Context, organizationID string) ([]domain.Profile, error) {
	return r.findProfiles(ctx, organizationID, profileRedactedColumns)
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $3, role = $4, hourly_cost_cents = $5, weekly_capacity_hours = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		profile.OrganizationID,
		profile.ProfileID,
		profile.Name,
		profile.Role,
		profile.HourlyCostCents,
		profile.WeeklyCapacityHours,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProfileRepository) UpdateCommissionConfig(ctx context.Context, organizationID, profileID string, percent decimal.Decimal, basis domain.CommissionBasis, updatedBy string) error {
	query := `
		UPDATE profiles
		SET commission_percent = $3, commission_basis = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, organizationID, profileID, percent, basis, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update commission config: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProfileRepository) UpdateRefreshToken(ctx context.Context, profileID, refreshTokenHash string, expiresAt *time.Time) error {
	query := `
		UPDATE profiles
		SET refresh_token_hash = NULLIF($2, ''), refresh_token_expiry_time = $3, last_updated_at = $4
		WHERE profile_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, profileID, refreshTokenHash, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProfileRepository) MarkProfileDeleted(ctx context.Context, organizationID, profileID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE profiles
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, organizationID, profileID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark profile deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
