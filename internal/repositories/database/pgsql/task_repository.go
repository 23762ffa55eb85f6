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

type PgxTaskRepository struct {
	db *pgxpool.Pool
}

func newPgxTaskRepository(db *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{db: db}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `
	task_id, organization_id, project_id, title, assignee_id, status,
	estimated_time_minutes, time_spent_minutes, deadline,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.OrganizationID,
		&t.ProjectID,
		&t.Title,
		&t.AssigneeID,
		&t.Status,
		&t.EstimatedTimeMinutes,
		&t.TimeSpentMinutes,
		&t.Deadline,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
        INSERT INTO tasks (task_id, organization_id, project_id, title, assignee_id, status,
            estimated_time_minutes, time_spent_minutes, deadline,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err := r.db.Exec(ctx, query,
		task.TaskID,
		task.OrganizationID,
		task.ProjectID,
		task.Title,
		task.AssigneeID,
		task.Status,
		task.EstimatedTimeMinutes,
		task.TimeSpentMinutes,
		task.Deadline,
		task.CreatedAt,
		task.CreatedBy,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, organizationID, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE organization_id = $1 AND task_id = $2 AND deleted_at IS NULL;`
	task, err := scanTask(r.db.QueryRow(ctx, query, organizationID, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	return task, nil
}

func (r *PgxTaskRepository) FindTasks(ctx context.Context, organizationID string, filter portsrepo.ListTasksFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE organization_id = $1 AND deleted_at IS NULL`
	args := []any{organizationID}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		query += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	return r.queryTasks(ctx, query, args...)
}

func (r *PgxTaskRepository) FindActiveTasks(ctx context.Context, organizationID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE organization_id = $1 AND deleted_at IS NULL
		  AND status IN ('todo', 'in_progress')
		ORDER BY deadline ASC NULLS LAST;`
	return r.queryTasks(ctx, query, organizationID)
}

func (r *PgxTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, assignee_id = $4, status = $5, estimated_time_minutes = $6,
		    time_spent_minutes = $7, deadline = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1 AND task_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		task.OrganizationID,
		task.TaskID,
		task.Title,
		task.AssigneeID,
		task.Status,
		task.EstimatedTimeMinutes,
		task.TimeSpentMinutes,
		task.Deadline,
		task.LastUpdatedAt,
		task.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, organizationID, taskID string, deletedBy string) error {
	query := `
		UPDATE tasks
		SET deleted_at = now(), last_updated_at = now(), last_updated_by = $3
		WHERE organization_id = $1 AND task_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, taskID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
