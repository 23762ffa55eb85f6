package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portsrepo "github.com/agenciahub/agency_ops_app/internal/core/ports/repositories"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/agenciahub/agency_ops_app/internal/utils/money"
	"github.com/agenciahub/agency_ops_app/internal/utils/timeutil"
)

const (
	cacheKeyProfitability = "client_profitability"
	cacheKeyWorkload      = "team_workload"
)

// analyticsService derives every financial and operational read-model from the
// organization's raw records. All derivations are pure: the same record set
// always produces the same report, so results are cacheable until a mutation
// invalidates the entity kinds they were derived from.
type analyticsService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	projectRepo portsrepo.ProjectRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	dealRepo    portsrepo.DealRepositoryFacade
	taskRepo    portsrepo.TaskRepositoryFacade
	aggCache    *cache.AggregateCache
}

// NewAnalyticsService creates the analytics service. aggCache may be nil to
// disable aggregate caching.
func NewAnalyticsService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	projectRepo portsrepo.ProjectRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	dealRepo portsrepo.DealRepositoryFacade,
	taskRepo portsrepo.TaskRepositoryFacade,
	aggCache *cache.AggregateCache,
) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		txnRepo:     txnRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		dealRepo:    dealRepo,
		taskRepo:    taskRepo,
		aggCache:    aggCache,
	}
}

// DRE builds the income statement for [from, to]. All six lines derive from
// the same transaction fetch; margemContribuicao and lucroLiquido are computed
// from the other lines so re-derivation over the same set is identical.
func (s *analyticsService) DRE(ctx context.Context, requester domain.Requester, from, to time.Time) (*domain.DREReport, error) {
	txns, err := s.txnRepo.FindTransactionsInPeriod(ctx, requester.OrganizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch transactions for DRE")
		return nil, fmt.Errorf("failed to fetch transactions for DRE: %w", err)
	}

	report := &domain.DREReport{PeriodStart: from, PeriodEnd: to}
	for i := range txns {
		t := &txns[i]
		switch t.Type {
		case domain.Receita:
			report.ReceitaBrutaCents += t.ValueCents
		case domain.Despesa:
			if t.Category == domain.CategoryImpostos {
				report.ImpostosCents += t.ValueCents
				continue
			}
			switch {
			case t.CostType.IsVariable():
				report.CustosVariaveisCents += t.ValueCents
			case t.CostType == domain.CostFixo:
				report.CustosFixosCents += t.ValueCents
			}
		}
	}

	report.MargemContribuicaoCents = report.ReceitaBrutaCents - report.ImpostosCents - report.CustosVariaveisCents
	report.LucroLiquidoCents = report.MargemContribuicaoCents - report.CustosFixosCents
	report.MargemLiquidaPercent = money.Ratio(report.LucroLiquidoCents, report.ReceitaBrutaCents)
	report.HasData = report.ReceitaBrutaCents != 0 || report.CustosFixosCents != 0 || report.CustosVariaveisCents != 0

	return report, nil
}

// ClientProfitability rolls up revenue and cost per client over the full
// transaction set. Transactions reach a client through their project; entries
// with no project attribution are skipped.
func (s *analyticsService) ClientProfitability(ctx context.Context, requester domain.Requester) ([]domain.ClientProfitability, error) {
	if s.aggCache != nil {
		if v, ok := s.aggCache.Get(requester.OrganizationID, cacheKeyProfitability); ok {
			if rows, ok := v.([]domain.ClientProfitability); ok {
				return rows, nil
			}
		}
	}

	txns, err := s.txnRepo.FindAllTransactions(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch transactions for profitability")
		return nil, fmt.Errorf("failed to fetch transactions for profitability: %w", err)
	}
	projects, err := s.projectRepo.FindProjects(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch projects for profitability")
		return nil, fmt.Errorf("failed to fetch projects for profitability: %w", err)
	}
	clients, err := s.clientRepo.FindClients(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch clients for profitability")
		return nil, fmt.Errorf("failed to fetch clients for profitability: %w", err)
	}

	projectClient := make(map[string]string, len(projects))
	for i := range projects {
		projectClient[projects[i].ProjectID] = projects[i].ClientID
	}
	clientNames := make(map[string]string, len(clients))
	for i := range clients {
		clientNames[clients[i].ClientID] = clients[i].Name
	}

	byClient := make(map[string]*domain.ClientProfitability)
	order := make([]string, 0)
	for i := range txns {
		t := &txns[i]
		if t.ProjectID == nil {
			continue
		}
		clientID, ok := projectClient[*t.ProjectID]
		if !ok {
			continue
		}
		row, ok := byClient[clientID]
		if !ok {
			row = &domain.ClientProfitability{ClientID: clientID, ClientName: clientNames[clientID]}
			byClient[clientID] = row
			order = append(order, clientID)
		}
		switch t.Type {
		case domain.Receita:
			row.RevenueCents += t.ValueCents
		case domain.Despesa:
			row.CostCents += t.ValueCents
		}
	}

	rows := make([]domain.ClientProfitability, 0, len(order))
	for _, clientID := range order {
		row := byClient[clientID]
		row.ProfitCents = row.RevenueCents - row.CostCents
		row.MarginPercent = money.Ratio(row.ProfitCents, row.RevenueCents)
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProfitCents > rows[j].ProfitCents
	})

	if s.aggCache != nil {
		s.aggCache.Put(requester.OrganizationID, cacheKeyProfitability, rows,
			cache.KindTransaction, cache.KindProject, cache.KindClient)
	}
	return rows, nil
}

// SalesPerformance ranks salespeople over [from, to]. Every team member starts
// at zero; closed_won deals and commission transactions in the period fold in;
// members with zero deals and zero revenue are dropped from the ranking.
func (s *analyticsService) SalesPerformance(ctx context.Context, requester domain.Requester, from, to time.Time) ([]domain.SalesPerformanceRow, error) {
	profiles, err := s.profileRepo.FindProfilesRedacted(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch profiles for sales performance")
		return nil, fmt.Errorf("failed to fetch profiles for sales performance: %w", err)
	}
	deals, err := s.dealRepo.FindClosedWonInPeriod(ctx, requester.OrganizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch closed deals for sales performance")
		return nil, fmt.Errorf("failed to fetch closed deals for sales performance: %w", err)
	}
	txns, err := s.txnRepo.FindTransactionsInPeriod(ctx, requester.OrganizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch transactions for sales performance")
		return nil, fmt.Errorf("failed to fetch transactions for sales performance: %w", err)
	}

	byProfile := make(map[string]*domain.SalesPerformanceRow, len(profiles))
	order := make([]string, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		byProfile[p.ProfileID] = &domain.SalesPerformanceRow{SalespersonID: p.ProfileID, Name: p.Name}
		order = append(order, p.ProfileID)
	}

	for i := range deals {
		d := &deals[i]
		row, ok := byProfile[d.SalespersonID]
		if !ok {
			continue
		}
		row.DealsClosed++
		row.RevenueCents += d.ValueCents
	}
	for i := range txns {
		t := &txns[i]
		if t.Category != domain.CategoryComissoes || t.SalespersonID == nil {
			continue
		}
		if row, ok := byProfile[*t.SalespersonID]; ok {
			row.CommissionEarnedCents += t.ValueCents
		}
	}

	rows := make([]domain.SalesPerformanceRow, 0, len(order))
	for _, profileID := range order {
		row := byProfile[profileID]
		if row.DealsClosed == 0 && row.RevenueCents == 0 {
			continue
		}
		row.AverageTicketCents = money.RoundDiv(row.RevenueCents, int64(row.DealsClosed))
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RevenueCents > rows[j].RevenueCents
	})
	return rows, nil
}

// ChurnRadar lists clients whose contract ends inside the horizon, ascending
// by end date. Clients already past their end date are not radar entries.
func (s *analyticsService) ChurnRadar(ctx context.Context, requester domain.Requester, horizonDays int) ([]domain.ChurnRiskClient, error) {
	// The lower bound is the start of today, not the current instant, so a
	// contract ending today (daysUntilEnd = 0) still enters the radar.
	today := timeutil.StartOfDay(time.Now())
	horizon := today.AddDate(0, 0, horizonDays)

	clients, err := s.clientRepo.FindClientsWithContractEndingBetween(ctx, requester.OrganizationID, today, horizon)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch clients for churn radar")
		return nil, fmt.Errorf("failed to fetch clients for churn radar: %w", err)
	}

	entries := make([]domain.ChurnRiskClient, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		if c.ContractEnd == nil {
			continue
		}
		days := timeutil.DaysUntil(today, *c.ContractEnd)
		if days < 0 {
			continue
		}
		entries = append(entries, domain.ChurnRiskClient{
			ClientID:        c.ClientID,
			Name:            c.Name,
			ContractEnd:     *c.ContractEnd,
			DaysUntilEnd:    days,
			RiskLevel:       domain.ClassifyChurnRisk(days),
			MonthlyFeeCents: c.MonthlyFee(),
		})
	}
	return entries, nil
}

// TeamWorkload aggregates active task estimates per member against weekly
// capacity, with a per-member task drill-down. Members with no active tasks
// still appear, at zero utilization.
func (s *analyticsService) TeamWorkload(ctx context.Context, requester domain.Requester) (*domain.TeamWorkloadReport, error) {
	if s.aggCache != nil {
		if v, ok := s.aggCache.Get(requester.OrganizationID, cacheKeyWorkload); ok {
			if report, ok := v.(*domain.TeamWorkloadReport); ok {
				return report, nil
			}
		}
	}

	profiles, err := s.profileRepo.FindProfilesRedacted(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch profiles for workload")
		return nil, fmt.Errorf("failed to fetch profiles for workload: %w", err)
	}
	tasks, err := s.taskRepo.FindActiveTasks(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch active tasks for workload")
		return nil, fmt.Errorf("failed to fetch active tasks for workload: %w", err)
	}
	projects, err := s.projectRepo.FindProjects(ctx, requester.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch projects for workload")
		return nil, fmt.Errorf("failed to fetch projects for workload: %w", err)
	}

	projectNames := make(map[string]string, len(projects))
	for i := range projects {
		projectNames[projects[i].ProjectID] = projects[i].Name
	}

	tasksByAssignee := make(map[string][]domain.WorkloadTask)
	minutesByAssignee := make(map[string]int)
	for i := range tasks {
		t := &tasks[i]
		tasksByAssignee[t.AssigneeID] = append(tasksByAssignee[t.AssigneeID], domain.WorkloadTask{
			TaskID:               t.TaskID,
			Title:                t.Title,
			EstimatedTimeMinutes: t.EstimatedTimeMinutes,
			Deadline:             t.Deadline,
			ProjectName:          projectNames[t.ProjectID],
		})
		minutesByAssignee[t.AssigneeID] += t.EstimatedTimeMinutes
	}

	report := &domain.TeamWorkloadReport{Members: make([]domain.MemberWorkload, 0, len(profiles))}
	for i := range profiles {
		p := &profiles[i]
		capacity := p.EffectiveWeeklyCapacity()
		allocated := float64(minutesByAssignee[p.ProfileID]) / 60
		utilization := money.RoundPercent(allocated, float64(capacity))
		status := domain.ClassifyUtilization(utilization)

		report.Members = append(report.Members, domain.MemberWorkload{
			ProfileID:           p.ProfileID,
			Name:                p.Name,
			WeeklyCapacityHours: capacity,
			AllocatedHours:      allocated,
			UtilizationPercent:  utilization,
			Status:              status,
			Tasks:               tasksByAssignee[p.ProfileID],
		})
		switch status {
		case domain.UtilizationOverloaded:
			report.OverloadedCount++
		case domain.UtilizationAttention:
			report.AttentionCount++
		}
	}
	sort.SliceStable(report.Members, func(i, j int) bool {
		return report.Members[i].UtilizationPercent > report.Members[j].UtilizationPercent
	})

	if s.aggCache != nil {
		s.aggCache.Put(requester.OrganizationID, cacheKeyWorkload, report,
			cache.KindTask, cache.KindProfile, cache.KindProject)
	}

	s.LogDebug(ctx, "team workload computed",
		slog.Int("members", len(report.Members)),
		slog.Int("overloaded", report.OverloadedCount))
	return report, nil
}
