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

type PgxAPITokenRepository struct {
	db *pgxpool.Pool
}

func newPgxAPITokenRepository(db *pgxpool.Pool) portsrepo.APITokenRepositoryFacade {
	return &PgxAPITokenRepository{db: db}
}

var _ portsrepo.APITokenRepositoryFacade = (*PgxAPITokenRepository)(nil)

const apiTokenColumns = `
	id, profile_id, organization_id, name, token_hash, last_used_at, expires_at,
	created_at, updated_at, deleted_at`

func scanAPIToken(row pgx.Row) (*domain.APIToken, error) {
	var t domain.APIToken
	err := row.Scan(
		&t.ID,
		&t.ProfileID,
		&t.OrganizationID,
		&t.Name,
		&t.TokenHash,
		&t.LastUsedAt,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxAPITokenRepository) SaveToken(ctx context.Context, token domain.APIToken) error {
	query := `
        INSERT INTO api_tokens (id, profile_id, organization_id, name, token_hash, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.ProfileID,
		token.OrganizationID,
		token.Name,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save api token: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxAPITokenRepository) FindTokenByHash(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE token_hash = $1 AND deleted_at IS NULL;`
	token, err := scanAPIToken(r.db.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token by hash: %w", err)
	}
	return token, nil
}

func (r *PgxAPITokenRepository) FindTokensByProfile(ctx context.Context, organizationID, profileID string) ([]domain.APIToken, error) {
	query := `SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE organization_id = $1 AND profile_id = $2 AND deleted_at IS NULL
		ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, organizationID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]domain.APIToken, 0)
	for rows.Next() {
		t, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api token row: %w", err)
		}
		tokens = append(tokens, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api token rows: %w", err)
	}
	return tokens, nil
}

func (r *PgxAPITokenRepository) TouchLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	query := `
		UPDATE api_tokens
		SET last_used_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL;
	`
	_, err := r.db.Exec(ctx, query, tokenID, usedAt)
	if err != nil {
		return fmt.Errorf("failed to touch api token last-used: %w", err)
	}
	return nil
}

func (r *PgxAPITokenRepository) RevokeToken(ctx context.Context, organizationID, profileID, tokenID string) error {
	query := `
		UPDATE api_tokens
		SET deleted_at = now(), updated_at = now()
		WHERE organization_id = $1 AND profile_id = $2 AND id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, profileID, tokenID)
	if err != nil {
		return fmt.Errorf("failed to revoke api token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
