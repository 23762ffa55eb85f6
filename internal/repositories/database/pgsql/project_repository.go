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

type PgxProjectRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectRepository(db *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{db: db}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const projectColumns = `
	project_id, organization_id, client_id, name, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.OrganizationID,
		&p.ClientID,
		&p.Name,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
        INSERT INTO projects (project_id, organization_id, client_id, name, status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		project.ProjectID,
		project.OrganizationID,
		project.ClientID,
		project.Name,
		project.Status,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = $1 AND project_id = $2 AND deleted_at IS NULL;`
	project, err := scanProject(r.db.QueryRow(ctx, query, organizationID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return project, nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, organizationID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1 AND project_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		project.OrganizationID,
		project.ProjectID,
		project.Name,
		project.Status,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, organizationID, projectID string, deletedBy string) error {
	query := `
		UPDATE projects
		SET deleted_at = now(), last_updated_at = now(), last_updated_by = $3
		WHERE organization_id = $1 AND project_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, projectID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
