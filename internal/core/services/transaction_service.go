package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/google/uuid"
)

// transactionService manages the financial ledger. Every mutation invalidates
// the transaction-derived aggregates, since DRE, profitability and sales
// performance all fold over this collection.
type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewTransactionService creates the transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, projectRepo portsrepo.ProjectRepositoryFacade, aggCache *cache.AggregateCache) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, projectRepo: projectRepo, aggCache: aggCache}
}

func (s *transactionService) CreateTransaction(ctx context.Context, requester domain.Requester, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindProjectByID(ctx, requester.OrganizationID, *req.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to find project for transaction: %w", err)
		}
	}

	nature := req.Nature
	if nature == "" {
		nature = domain.NatureOperacional
	}
	status := req.Status
	if status == "" {
		status = domain.StatusPendente
	}
	costType := req.CostType
	if req.Type == domain.Despesa && costType == "" {
		return nil, fmt.Errorf("%w: despesa requires a cost type", apperrors.ErrValidation)
	}

	now := time.Now()
	competence := req.Date
	if req.CompetenceDate != nil {
		competence = *req.CompetenceDate
	}
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: requester.OrganizationID,
		Description:    req.Description,
		Category:       req.Category,
		ValueCents:     req.ValueCents,
		Type:           req.Type,
		Nature:         nature,
		CostType:       costType,
		IsRepasse:      req.IsRepasse,
		Date:           req.Date,
		CompetenceDate: competence,
		Status:         status,
		ProjectID:      req.ProjectID,
		SalespersonID:  req.SalespersonID,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "failed to create transaction", slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTransaction)
	}
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, requester domain.Requester, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, requester.OrganizationID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, requester domain.Requester, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	repoParams := portsrepo.ListTransactionsParams{
		Category:  params.Category,
		ProjectID: params.ProjectID,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		if t != domain.Receita && t != domain.Despesa {
			return nil, "", fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, params.Type)
		}
		repoParams.Type = t
	}

	txns, nextToken, err := s.txnRepo.FindTransactions(ctx, requester.OrganizationID, repoParams)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nextToken, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, requester domain.Requester, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, requester.OrganizationID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction for update: %w", err)
	}

	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.ValueCents != nil {
		txn.ValueCents = *req.ValueCents
	}
	if req.Status != nil {
		txn.Status = *req.Status
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = requester.ProfileID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTransaction)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, requester domain.Requester, transactionID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.txnRepo.DeleteTransaction(ctx, requester.OrganizationID, transactionID, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTransaction)
	}
	return nil
}
