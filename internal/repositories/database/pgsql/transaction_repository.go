package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	"github.com/agenciahub/agency_ops_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTransactionListLimit = 50

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, organization_id, description, category, value_cents, type, nature,
	cost_type, is_repasse, date, competence_date, status, project_id, salesperson_id,
	deal_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.OrganizationID,
		&t.Description,
		&t.Category,
		&t.ValueCents,
		&t.Type,
		&t.Nature,
		&t.CostType,
		&t.IsRepasse,
		&t.Date,
		&t.CompetenceDate,
		&t.Status,
		&t.ProjectID,
		&t.SalespersonID,
		&t.DealID,
		&t.Notes,
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

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        INSERT INTO transactions (transaction_id, organization_id, description, category, value_cents,
            type, nature, cost_type, is_repasse, date, competence_date, status,
            project_id, salesperson_id, deal_id, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
    `
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.OrganizationID,
		txn.Description,
		txn.Category,
		txn.ValueCents,
		txn.Type,
		txn.Nature,
		txn.CostType,
		txn.IsRepasse,
		txn.Date,
		txn.CompetenceDate,
		txn.Status,
		txn.ProjectID,
		txn.SalespersonID,
		txn.DealID,
		txn.Notes,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", mapPgError(err))
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND transaction_id = $2 AND deleted_at IS NULL;`
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, organizationID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactions pages through the ledger newest first using a keyset cursor
// over (date, transaction_id).
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, organizationID string, params portsrepo.ListTransactionsParams) ([]domain.Transaction, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionListLimit
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND deleted_at IS NULL`
	args := []any{organizationID}

	if params.Type != "" {
		args = append(args, params.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if params.ProjectID != "" {
		args = append(args, params.ProjectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if params.NextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursorDate, cursorID)
		query += fmt.Sprintf(" AND (date, transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY date DESC, transaction_id DESC LIMIT $%d", len(args))

	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeCursor(last.Date, last.TransactionID)
	}
	return txns, nextToken, nil
}

func (r *PgxTransactionRepository) FindTransactionsInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND deleted_at IS NULL
		  AND date >= $2 AND date <= $3
		ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, organizationID, from, to)
}

func (r *PgxTransactionRepository) FindAllTransactions(ctx context.Context, organizationID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY date ASC;`
	return r.queryTransactions(ctx, query, organizationID)
}

func (r *PgxTransactionRepository) FindCommissionByDealID(ctx context.Context, organizationID, dealID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1 AND deal_id = $2 AND deleted_at IS NULL;`
	txn, err := scanTransaction(r.db.QueryRow(ctx, query, organizationID, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find commission for deal %s: %w", dealID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $3, category = $4, value_cents = $5, status = $6, date = $7, notes = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1 AND transaction_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query,
		txn.OrganizationID,
		txn.TransactionID,
		txn.Description,
		txn.Category,
		txn.ValueCents,
		txn.Status,
		txn.Date,
		txn.Notes,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, organizationID, transactionID string, deletedBy string) error {
	query := `
		UPDATE transactions
		SET deleted_at = now(), last_updated_at = now(), last_updated_by = $3
		WHERE organization_id = $1 AND transaction_id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.db.Exec(ctx, query, organizationID, transactionID, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
