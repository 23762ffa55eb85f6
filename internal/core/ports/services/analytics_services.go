package services

import (
	"context"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// AnalyticsSvcFacade defines the read-model derivations over the
// organization's raw records. All operations are pure reads: they never
// mutate state and are safe to issue concurrently or to re-run.
type AnalyticsSvcFacade interface {
	// DRE computes the income statement for [from, to].
	DRE(ctx context.Context, requester domain.Requester, from, to time.Time) (*domain.DREReport, error)

	// ClientProfitability computes profit and margin per client over the full
	// transaction set, sorted by profit descending.
	ClientProfitability(ctx context.Context, requester domain.Requester) ([]domain.ClientProfitability, error)

	// SalesPerformance ranks salespeople by revenue from closed_won deals in
	// the period, folding in provisioned commissions.
	SalesPerformance(ctx context.Context, requester domain.Requester, from, to time.Time) ([]domain.SalesPerformanceRow, error)

	// ChurnRadar lists clients whose contract ends within horizonDays,
	// tiered by days remaining. Past-end clients are excluded.
	ChurnRadar(ctx context.Context, requester domain.Requester, horizonDays int) ([]domain.ChurnRiskClient, error)

	// TeamWorkload aggregates active task estimates per member against
	// declared weekly capacity.
	TeamWorkload(ctx context.Context, requester domain.Requester) (*domain.TeamWorkloadReport, error)
}
