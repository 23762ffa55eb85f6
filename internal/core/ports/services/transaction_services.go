package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// TransactionSvcFacade defines operations on financial transactions.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, requester domain.Requester, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, requester domain.Requester, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, requester domain.Requester, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
	UpdateTransaction(ctx context.Context, requester domain.Requester, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, requester domain.Requester, transactionID string) error
}
