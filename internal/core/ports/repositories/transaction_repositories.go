package repositories

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// ListTransactionsParams controls cursor pagination and filtering of the
// transaction listing.
type ListTransactionsParams struct {
	Type      domain.TransactionType
	Category  string
	ProjectID string
	Limit     int
	// NextToken is a cursor produced by pagination.EncodeCursor; empty starts
	// from the newest transaction.
	NextToken string
}

// TransactionRepositoryFacade defines persistence operations for financial
// transactions.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, organizationID, transactionID string) (*domain.Transaction, error)
	FindTransactions(ctx context.Context, organizationID string, params ListTransactionsParams) ([]domain.Transaction, string, error)
	// FindTransactionsInPeriod returns all transactions dated inside
	// [from, to], the input set for the DRE and sales performance.
	FindTransactionsInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Transaction, error)
	// FindAllTransactions returns the organization's whole transaction set,
	// the input for client profitability.
	FindAllTransactions(ctx context.Context, organizationID string) ([]domain.Transaction, error)
	// FindCommissionByDealID returns the provisioned commission transaction
	// for a deal, or ErrNotFound. This is the idempotency pre-check for
	// commission provisioning.
	FindCommissionByDealID(ctx context.Context, organizationID, dealID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, organizationID, transactionID string, deletedBy string) error
}
