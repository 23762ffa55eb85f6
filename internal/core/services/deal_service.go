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

// pipelineStageOrder fixes the display order of the kanban columns.
var pipelineStageOrder = []domain.DealStage{
	domain.StageProspecting,
	domain.StageProposal,
	domain.StageNegotiation,
}

// dealService manages the sales pipeline. Stage moves into closed_won trigger
// commission provisioning exactly on the transition edge.
type dealService struct {
	BaseService
	dealRepo      portsrepo.DealRepositoryFacade
	profileRepo   portsrepo.ProfileRepositoryFacade
	commissionSvc portssvc.CommissionSvcFacade
	aggCache      *cache.AggregateCache
}

// NewDealService creates the deal service.
func NewDealService(
	dealRepo portsrepo.DealRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	commissionSvc portssvc.CommissionSvcFacade,
	aggCache *cache.AggregateCache,
) portssvc.DealSvcFacade {
	return &dealService{
		dealRepo:      dealRepo,
		profileRepo:   profileRepo,
		commissionSvc: commissionSvc,
		aggCache:      aggCache,
	}
}

func (s *dealService) CreateDeal(ctx context.Context, requester domain.Requester, req dto.CreateDealRequest) (*domain.Deal, error) {
	// Salesperson must be a member of the same organization.
	if _, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, req.SalespersonID); err != nil {
		return nil, fmt.Errorf("failed to find salesperson for deal: %w", err)
	}

	now := time.Now()
	deal := domain.Deal{
		DealID:         uuid.NewString(),
		OrganizationID: requester.OrganizationID,
		Company:        req.Company,
		Contact:        req.Contact,
		ValueCents:     req.ValueCents,
		Probability:    req.Probability,
		Stage:          domain.StageProspecting,
		SalespersonID:  req.SalespersonID,
		ProjectID:      req.ProjectID,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requester.ProfileID,
			LastUpdatedAt: now,
			LastUpdatedBy: requester.ProfileID,
		},
	}

	if err := s.dealRepo.SaveDeal(ctx, deal); err != nil {
		s.LogError(ctx, err, "failed to create deal", slog.String("company", req.Company))
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindDeal)
	}
	return &deal, nil
}

func (s *dealService) GetDealByID(ctx context.Context, requester domain.Requester, dealID string) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, requester.OrganizationID, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return deal, nil
}

func (s *dealService) ListDeals(ctx context.Context, requester domain.Requester, params dto.ListDealsParams) ([]domain.Deal, error) {
	filter := portsrepo.ListDealsFilter{
		SalespersonID: params.SalespersonID,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	if params.Stage != "" {
		stage := domain.DealStage(params.Stage)
		if !stage.Valid() {
			return nil, fmt.Errorf("%w: unknown deal stage %q", apperrors.ErrValidation, params.Stage)
		}
		filter.Stage = stage
	}

	deals, err := s.dealRepo.FindDeals(ctx, requester.OrganizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	if deals == nil {
		return []domain.Deal{}, nil
	}
	return deals, nil
}

func (s *dealService) UpdateDeal(ctx context.Context, requester domain.Requester, dealID string, req dto.UpdateDealRequest) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, requester.OrganizationID, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deal for update: %w", err)
	}

	if req.Company != nil {
		deal.Company = *req.Company
	}
	if req.Contact != nil {
		deal.Contact = *req.Contact
	}
	if req.ValueCents != nil {
		deal.ValueCents = *req.ValueCents
	}
	if req.Probability != nil {
		deal.Probability = *req.Probability
	}
	if req.SalespersonID != nil {
		if _, err := s.profileRepo.FindProfileByID(ctx, requester.OrganizationID, *req.SalespersonID); err != nil {
			return nil, fmt.Errorf("failed to find salesperson for deal: %w", err)
		}
		deal.SalespersonID = *req.SalespersonID
	}
	if req.ProjectID != nil {
		deal.ProjectID = req.ProjectID
	}
	if req.Notes != nil {
		deal.Notes = *req.Notes
	}
	deal.LastUpdatedAt = time.Now()
	deal.LastUpdatedBy = requester.ProfileID

	if err := s.dealRepo.UpdateDeal(ctx, *deal); err != nil {
		s.LogError(ctx, err, "failed to update deal", slog.String("deal_id", dealID))
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindDeal)
	}
	return deal, nil
}

// MoveDealStage is the kanban move. Commission provisioning runs only when the
// deal was not closed_won before and is closed_won after; re-saving a deal
// that already sits in closed_won is not a new closure event.
func (s *dealService) MoveDealStage(ctx context.Context, requester domain.Requester, dealID string, stage domain.DealStage) (*domain.Deal, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: unknown deal stage %q", apperrors.ErrValidation, stage)
	}

	deal, err := s.dealRepo.FindDealByID(ctx, requester.OrganizationID, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to find deal for stage move: %w", err)
	}

	previousStage := deal.Stage
	if previousStage == stage {
		return deal, nil
	}

	if err := s.dealRepo.UpdateDealStage(ctx, requester.OrganizationID, dealID, stage, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to move deal stage",
			slog.String("deal_id", dealID), slog.String("stage", string(stage)))
		return nil, fmt.Errorf("failed to move deal stage: %w", err)
	}
	deal.Stage = stage
	deal.LastUpdatedAt = time.Now()
	deal.LastUpdatedBy = requester.ProfileID

	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindDeal)
	}

	// Transition edge into closed_won.
	if stage == domain.StageClosedWon && previousStage != domain.StageClosedWon {
		if _, err := s.commissionSvc.ProvisionForDeal(ctx, requester, dealID); err != nil {
			// The stage move already happened; surface provisioning failures
			// without rolling the deal back. The engine is idempotent, so the
			// caller can retry through the webhook.
			s.LogError(ctx, err, "commission provisioning failed after stage move", slog.String("deal_id", dealID))
			return nil, fmt.Errorf("deal moved but commission provisioning failed: %w", err)
		}
	}

	return deal, nil
}

func (s *dealService) DeleteDeal(ctx context.Context, requester domain.Requester, dealID string) error {
	if !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.dealRepo.DeleteDeal(ctx, requester.OrganizationID, dealID, requester.ProfileID); err != nil {
		s.LogError(ctx, err, "failed to delete deal", slog.String("deal_id", dealID))
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if s.aggCache != nil {
		s.aggCache.Invalidate(requester.OrganizationID, cache.KindDeal)
	}
	return nil
}

// PipelineSummary values the open pipeline per stage plus the
// probability-weighted total.
func (s *dealService) PipelineSummary(ctx context.Context, requester domain.Requester) (*domain.PipelineSummary, error) {
	deals, err := s.dealRepo.FindOpenDeals(ctx, requester.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open deals for pipeline: %w", err)
	}

	byStage := make(map[domain.DealStage]*domain.PipelineStageSummary, len(pipelineStageOrder))
	summary := &domain.PipelineSummary{}
	for _, stage := range pipelineStageOrder {
		byStage[stage] = &domain.PipelineStageSummary{Stage: stage}
	}

	for i := range deals {
		d := &deals[i]
		if !d.CountsTowardPipeline() {
			continue
		}
		row, ok := byStage[d.Stage]
		if !ok {
			continue
		}
		row.DealCount++
		row.ValueCents += d.ValueCents
		summary.OpenDealCount++
		summary.TotalValueCents += d.ValueCents
		summary.WeightedValueCents += d.WeightedValueCents()
	}

	summary.Stages = make([]domain.PipelineStageSummary, 0, len(pipelineStageOrder))
	for _, stage := range pipelineStageOrder {
		summary.Stages = append(summary.Stages, *byStage[stage])
	}
	return summary, nil
}
