package repositories

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// ListDealsFilter narrows a deal listing. Zero values mean "no filter".
type ListDealsFilter struct {
	Stage         domain.DealStage
	SalespersonID string
	Limit         int
	Offset        int
}

// DealRepositoryFacade defines persistence operations for deals.
type DealRepositoryFacade interface {
	SaveDeal(ctx context.Context, deal domain.Deal) error
	FindDealByID(ctx context.Context, organizationID, dealID string) (*domain.Deal, error)
	FindDeals(ctx context.Context, organizationID string, filter ListDealsFilter) ([]domain.Deal, error)
	// FindOpenDeals returns deals in non-terminal stages, for pipeline
	// valuation.
	FindOpenDeals(ctx context.Context, organizationID string) ([]domain.Deal, error)
	// FindClosedWonInPeriod returns closed_won deals whose last update falls
	// inside [from, to].
	FindClosedWonInPeriod(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Deal, error)
	UpdateDeal(ctx context.Context, deal domain.Deal) error
	UpdateDealStage(ctx context.Context, organizationID, dealID string, stage domain.DealStage, updatedBy string) error
	DeleteDeal(ctx context.Context, organizationID, dealID string, deletedBy string) error
}
