package services

import (
	"context"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
)

// DealSvcFacade defines operations on deals and the pipeline.
//
// MoveDealStage is the kanban move. When the move crosses into closed_won it
// triggers commission provisioning exactly on the transition edge; moving a
// deal that is already closed_won is not a new closure event.
type DealSvcFacade interface {
	CreateDeal(ctx context.Context, requester domain.Requester, req dto.CreateDealRequest) (*domain.Deal, error)
	GetDealByID(ctx context.Context, requester domain.Requester, dealID string) (*domain.Deal, error)
	ListDeals(ctx context.Context, requester domain.Requester, params dto.ListDealsParams) ([]domain.Deal, error)
	UpdateDeal(ctx context.Context, requester domain.Requester, dealID string, req dto.UpdateDealRequest) (*domain.Deal, error)
	MoveDealStage(ctx context.Context, requester domain.Requester, dealID string, stage domain.DealStage) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, requester domain.Requester, dealID string) error
	PipelineSummary(ctx context.Context, requester domain.Requester) (*domain.PipelineSummary, error)
}
