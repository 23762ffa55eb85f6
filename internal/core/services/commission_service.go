package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/agenciahub/agency_ops_app/internal/utils/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// commissionService provisions sales commissions as despesa transactions and
// manages per-member commission configuration.
type commissionService struct {
	BaseService
	dealRepo    portsrepo.DealRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewCommissionService creates the commission service.
func NewCommissionService(
	dealRepo portsrepo.DealRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	aggCache *cache.AggregateCache,
) portssvc.CommissionSvcFacade {
	return &commissionService{
		dealRepo:    dealRepo,
		profileRepo: profileRepo,
		txnRepo:     txnRepo,
		aggCache:    aggCache,
	}
}

// ProvisionForDeal creates the commission transaction for a closed_won deal.
//
// The order is fixed: deal lookup, existing-commission check, salesperson
// lookup, then the single insert. Any lookup failure aborts before the insert,
// so a failed provisioning never leaves a partial write. A second call for the
// same deal finds the existing transaction and returns (nil, nil); the unique
// index on transactions.deal_id backs this check against concurrent callers.
func (s *commissionService) ProvisionForDeal(ctx context.Context, requester domain.Requester, dealID string) (*domain.Transaction, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, requester.OrganizationID, dealID)
	if err != nil {
		s.LogError(ctx, err, "failed to find deal for commission provisioning", slog.String("deal_id", dealID))
		return nil, fmt.Errorf("failed to find deal for commission provisioning: %w", err)
	}
	if deal.Stage != domain.StageClosedWon {
		return nil, fmt.Errorf("%w: deal %s is not closed_won", apperrors.ErrValidation, dealID)
	}

	existing, err := s.txnRepo.FindCommissionByDealID(ctx, requester.OrganizationID, dealID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to check for existing commission", slog.String("deal_id", dealID))
		return nil, fmt.Errorf("failed to check for existing commission: %w", err)
	}
	if existing != nil {
		s.LogInfo(ctx, "commission already provisioned for deal, skipping", slog.String("deal_id", dealID))
		return nil, nil
	}

	salesperson, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, deal.SalespersonID)
	if err != nil {
		s.LogError(ctx, err, "failed to find salesperson for commission provisioning",
			slog.String("deal_id", dealID), slog.String("salesperson_id", deal.SalespersonID))
		return nil, fmt.Errorf("failed to find salesperson for commission provisioning: %w", err)
	}
	if !salesperson.HasCommission() {
		s.LogInfo(ctx, "salesperson has no commission configured, skipping",
			slog.String("deal_id", dealID), slog.String("salesperson_id", salesperson.ProfileID))
		return nil, nil
	}

	amount := money.PercentOf(deal.ValueCents, salesperson.CommissionPercent)
	now := time.Now()
	salespersonID := salesperson.ProfileID
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		OrganizationID: requester.OrganizationID,
		Description:    fmt.Sprintf("Comissão - %s (%s)", deal.Company, salesperson.Name),
		Category:       domain.CategoryComissoes,
		ValueCents:     amount,
		Type:           domain.Despesa,
		Nature:         domain.NatureOperacional,
		CostType:       domain.CostVariavel,
		Date:           now,
		CompetenceDate: now,
		Status:         domain.StatusPendente,
		ProjectID:      deal.ProjectID,
		SalespersonID:  &salespersonID,
		DealID:         &deal.DealID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race against a concurrent provisioning. The deal already
			// has its commission, so this call is still a successful no-op.
			s.LogInfo(ctx, "concurrent commission provisioning detected, skipping", slog.String("deal_id", dealID))
			return nil, nil
		}
		s.LogError(ctx, err, "failed to save commission transaction", slog.String("deal_id", dealID))
		return nil, fmt.Errorf("failed to save commission transaction: %w", err)
	}

	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindTransaction)
	}
	s.LogInfo(ctx, "commission provisioned",
		slog.String("deal_id", dealID),
		slog.String("salesperson_id", salesperson.ProfileID),
		slog.Int64("amount_cents", amount))
	return &txn, nil
}

// UpdateCommissionConfig changes a profile's commission percentage and basis.
// Admin only. Already-provisioned commissions keep their amounts.
func (s *commissionService) UpdateCommissionConfig(ctx context.Context, requester domain.Requester, profileID string, req dto.UpdateCommissionConfigRequest) (*domain.Profile, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if req.CommissionPercent.IsNegative() || req.CommissionPercent.GreaterThan(decimalHundred) {
		return nil, fmt.Errorf("%w: commission percent must be between 0 and 100", apperrors.ErrValidation)
	}

	if err := s.profileRepo.UpdateCommissionConfig(ctx, requester.OrganizationID, profileID, req.CommissionPercent, req.CommissionBasis, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to update commission config", slog.String("profile_id", profileID))
		return nil, fmt.Errorf("failed to update commission config: %w", err)
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile after commission update: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindProfile)
	}
	return profile, nil
}
