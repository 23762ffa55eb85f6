package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	portssvc "github.com/agenciahub/agency_ops_app/internal/core/ports/services"
	"github.com/agenciahub/agency_ops_app/internal/core/services"
	"github.com/agenciahub/agency_ops_app/internal/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockClientRepo  *MockClientRepository
	mockProjectRepo *MockProjectRepository
	mockProfileRepo *MockProfileRepository
	mockDealRepo    *MockDealRepository
	mockTaskRepo    *MockTaskRepository
	aggCache        *cache.AggregateCache
	service         portssvc.AnalyticsSvcFacade
	requester       domain.Requester
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockDealRepo = new(MockDealRepository)
	suite.mockTaskRepo = new(MockTaskRepository)
	suite.aggCache = cache.New(time.Minute)
	suite.service = services.NewAnalyticsService(
		suite.mockTxnRepo,
		suite.mockClientRepo,
		suite.mockProjectRepo,
		suite.mockProfileRepo,
		suite.mockDealRepo,
		suite.mockTaskRepo,
		suite.aggCache,
	)
	suite.requester = domain.Requester{
		ProfileID:      "profile-1",
		OrganizationID: "org-1",
		Roles:          []string{"admin"},
	}
}

// --- DRE ---

func (suite *AnalyticsServiceTestSuite) TestDRE_ComputesAllLines() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	txns := []domain.Transaction{
		{Type: domain.Receita, ValueCents: 300000},
		{Type: domain.Receita, ValueCents: 200000},
		{Type: domain.Despesa, Category: domain.CategoryImpostos, CostType: domain.CostVariavel, ValueCents: 0},
		{Type: domain.Despesa, CostType: domain.CostFixo, ValueCents: 100000},
		{Type: domain.Despesa, CostType: domain.CostVariavel, ValueCents: 30000},
		{Type: domain.Despesa, CostType: domain.CostDireto, ValueCents: 20000},
	}
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(txns, nil).Once()

	report, err := suite.service.DRE(ctx, suite.requester, from, to)

	suite.Require().NoError(err)
	suite.Equal(int64(500000), report.ReceitaBrutaCents)
	suite.Equal(int64(0), report.ImpostosCents)
	suite.Equal(int64(50000), report.CustosVariaveisCents, "direct costs roll up with variable costs")
	suite.Equal(int64(100000), report.CustosFixosCents)
	suite.Equal(int64(450000), report.MargemContribuicaoCents)
	suite.Equal(int64(350000), report.LucroLiquidoCents)
	suite.Equal(70.0, report.MargemLiquidaPercent)
	suite.True(report.HasData)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestDRE_TaxCategoryBeatsCostType() {
	ctx := context.Background()
	from, to := time.Time{}, time.Time{}

	// An Impostos expense never counts toward variable costs, whatever its
	// cost type says.
	txns := []domain.Transaction{
		{Type: domain.Receita, ValueCents: 100000},
		{Type: domain.Despesa, Category: domain.CategoryImpostos, CostType: domain.CostVariavel, ValueCents: 15000},
	}
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(txns, nil).Once()

	report, err := suite.service.DRE(ctx, suite.requester, from, to)

	suite.Require().NoError(err)
	suite.Equal(int64(15000), report.ImpostosCents)
	suite.Equal(int64(0), report.CustosVariaveisCents)
	suite.Equal(int64(85000), report.MargemContribuicaoCents)
}

func (suite *AnalyticsServiceTestSuite) TestDRE_EmptyPeriod() {
	ctx := context.Background()
	from, to := time.Time{}, time.Time{}
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return([]domain.Transaction{}, nil).Once()

	report, err := suite.service.DRE(ctx, suite.requester, from, to)

	suite.Require().NoError(err)
	suite.False(report.HasData)
	suite.Equal(0.0, report.MargemLiquidaPercent, "no revenue yields 0, never a division error")
}

func (suite *AnalyticsServiceTestSuite) TestDRE_RerunYieldsIdenticalReport() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)

	txns := []domain.Transaction{
		{Type: domain.Receita, ValueCents: 500000},
		{Type: domain.Despesa, CostType: domain.CostFixo, ValueCents: 100000},
		{Type: domain.Despesa, CostType: domain.CostVariavel, ValueCents: 50000},
	}
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(txns, nil).Twice()

	first, err := suite.service.DRE(ctx, suite.requester, from, to)
	suite.Require().NoError(err)
	second, err := suite.service.DRE(ctx, suite.requester, from, to)
	suite.Require().NoError(err)

	suite.Equal(first, second, "re-deriving over an unchanged set is deterministic")
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestDRE_RepoError() {
	ctx := context.Background()
	from, to := time.Time{}, time.Time{}
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(nil, assert.AnError).Once()

	report, err := suite.service.DRE(ctx, suite.requester, from, to)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, assert.AnError)
}

// --- Client profitability ---

func (suite *AnalyticsServiceTestSuite) TestClientProfitability_AttributionAndSort() {
	ctx := context.Background()
	projA, projB := "proj-a", "proj-b"

	txns := []domain.Transaction{
		{Type: domain.Receita, ValueCents: 100000, ProjectID: &projA},
		{Type: domain.Despesa, ValueCents: 80000, ProjectID: &projA},
		{Type: domain.Receita, ValueCents: 50000, ProjectID: &projB},
		{Type: domain.Despesa, ValueCents: 10000, ProjectID: &projB},
		{Type: domain.Receita, ValueCents: 999999}, // no project, skipped
	}
	projects := []domain.Project{
		{ProjectID: projA, ClientID: "client-a", Name: "Site"},
		{ProjectID: projB, ClientID: "client-b", Name: "Ads"},
	}
	clients := []domain.Client{
		{ClientID: "client-a", Name: "Acme"},
		{ClientID: "client-b", Name: "Globex"},
	}
	suite.mockTxnRepo.On("FindAllTransactions", ctx, "org-1").Return(txns, nil).Once()
	suite.mockProjectRepo.On("FindProjects", ctx, "org-1").Return(projects, nil).Once()
	suite.mockClientRepo.On("FindClients", ctx, "org-1").Return(clients, nil).Once()

	rows, err := suite.service.ClientProfitability(ctx, suite.requester)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	// Globex: 50000 - 10000 = 40000 profit beats Acme's 20000.
	suite.Equal("client-b", rows[0].ClientID)
	suite.Equal("Globex", rows[0].ClientName)
	suite.Equal(int64(40000), rows[0].ProfitCents)
	suite.Equal(80.0, rows[0].MarginPercent)

	suite.Equal("client-a", rows[1].ClientID)
	suite.Equal(int64(20000), rows[1].ProfitCents)
	suite.Equal(20.0, rows[1].MarginPercent)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestClientProfitability_SecondCallServedFromCache() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindAllTransactions", ctx, "org-1").Return([]domain.Transaction{}, nil).Once()
	suite.mockProjectRepo.On("FindProjects", ctx, "org-1").Return([]domain.Project{}, nil).Once()
	suite.mockClientRepo.On("FindClients", ctx, "org-1").Return([]domain.Client{}, nil).Once()

	_, err := suite.service.ClientProfitability(ctx, suite.requester)
	suite.Require().NoError(err)

	// Once() above: a second repo hit would fail the mock expectations.
	_, err = suite.service.ClientProfitability(ctx, suite.requester)
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestClientProfitability_RecomputedAfterInvalidation() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindAllTransactions", ctx, "org-1").Return([]domain.Transaction{}, nil).Twice()
	suite.mockProjectRepo.On("FindProjects", ctx, "org-1").Return([]domain.Project{}, nil).Twice()
	suite.mockClientRepo.On("FindClients", ctx, "org-1").Return([]domain.Client{}, nil).Twice()

	_, err := suite.service.ClientProfitability(ctx, suite.requester)
	suite.Require().NoError(err)

	suite.aggCache.Invalidate("org-1", cache.KindTransaction)

	_, err = suite.service.ClientProfitability(ctx, suite.requester)
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Sales performance ---

func (suite *AnalyticsServiceTestSuite) TestSalesPerformance_RankingAndAverages() {
	ctx := context.Background()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)

	profiles := []domain.Profile{
		{ProfileID: "sp-1", Name: "Ana"},
		{ProfileID: "sp-2", Name: "Bruno"},
		{ProfileID: "sp-3", Name: "Carla"}, // no activity, dropped
	}
	deals := []domain.Deal{
		{DealID: "d-1", SalespersonID: "sp-1", ValueCents: 100000, Stage: domain.StageClosedWon},
		{DealID: "d-2", SalespersonID: "sp-1", ValueCents: 50000, Stage: domain.StageClosedWon},
		{DealID: "d-3", SalespersonID: "sp-2", ValueCents: 200000, Stage: domain.StageClosedWon},
	}
	sp1, sp2 := "sp-1", "sp-2"
	txns := []domain.Transaction{
		{Category: domain.CategoryComissoes, SalespersonID: &sp1, ValueCents: 15000, Type: domain.Despesa},
		{Category: domain.CategoryComissoes, SalespersonID: &sp2, ValueCents: 20000, Type: domain.Despesa},
		{Category: "Software", SalespersonID: &sp1, ValueCents: 5000, Type: domain.Despesa}, // not a commission
	}
	suite.mockProfileRepo.On("FindProfilesRedacted", ctx, "org-1").Return(profiles, nil).Once()
	suite.mockDealRepo.On("FindClosedWonInPeriod", ctx, "org-1", from, to).Return(deals, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(txns, nil).Once()

	rows, err := suite.service.SalesPerformance(ctx, suite.requester, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2, "members with no activity are dropped")

	suite.Equal("sp-2", rows[0].SalespersonID)
	suite.Equal(int64(200000), rows[0].RevenueCents)
	suite.Equal(1, rows[0].DealsClosed)
	suite.Equal(int64(20000), rows[0].CommissionEarnedCents)
	suite.Equal(int64(200000), rows[0].AverageTicketCents)

	suite.Equal("sp-1", rows[1].SalespersonID)
	suite.Equal(int64(150000), rows[1].RevenueCents)
	suite.Equal(2, rows[1].DealsClosed)
	suite.Equal(int64(15000), rows[1].CommissionEarnedCents)
	suite.Equal(int64(75000), rows[1].AverageTicketCents)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestSalesPerformance_CommissionOnlyMemberExcluded() {
	ctx := context.Background()
	from, to := time.Time{}, time.Time{}

	profiles := []domain.Profile{{ProfileID: "sp-1", Name: "Ana"}}
	sp1 := "sp-1"
	txns := []domain.Transaction{
		{Category: domain.CategoryComissoes, SalespersonID: &sp1, ValueCents: 7000, Type: domain.Despesa},
	}
	suite.mockProfileRepo.On("FindProfilesRedacted", ctx, "org-1").Return(profiles, nil).Once()
	suite.mockDealRepo.On("FindClosedWonInPeriod", ctx, "org-1", from, to).Return([]domain.Deal{}, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsInPeriod", ctx, "org-1", from, to).Return(txns, nil).Once()

	rows, err := suite.service.SalesPerformance(ctx, suite.requester, from, to)

	suite.Require().NoError(err)
	suite.Empty(rows, "zero deals and zero revenue drops the member; a stray commission alone does not rank")
}

// --- Churn radar ---

func (suite *AnalyticsServiceTestSuite) TestChurnRadar_Tiers() {
	ctx := context.Background()
	now := time.Now()
	in10 := now.AddDate(0, 0, 10)
	in20 := now.AddDate(0, 0, 20)
	in45 := now.AddDate(0, 0, 45)
	fee := int64(300000)

	clients := []domain.Client{
		{ClientID: "c-1", Name: "Urgent Co", ContractEnd: &in10, MonthlyFeeCents: &fee},
		{ClientID: "c-2", Name: "Soon Co", ContractEnd: &in20},
		{ClientID: "c-3", Name: "Later Co", ContractEnd: &in45},
	}
	suite.mockClientRepo.On("FindClientsWithContractEndingBetween", ctx, "org-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(clients, nil).Once()

	entries, err := suite.service.ChurnRadar(ctx, suite.requester, 60)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)

	suite.Equal(domain.RiskCritical, entries[0].RiskLevel)
	suite.Equal(int64(300000), entries[0].MonthlyFeeCents)
	suite.Equal(domain.RiskHigh, entries[1].RiskLevel)
	suite.Equal(int64(0), entries[1].MonthlyFeeCents, "unset fee reads as 0")
	suite.Equal(domain.RiskMedium, entries[2].RiskLevel)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestChurnRadar_ContractEndingTodayIsCritical() {
	ctx := context.Background()
	endsToday := time.Now()

	clients := []domain.Client{{ClientID: "c-1", Name: "Edge Co", ContractEnd: &endsToday}}
	// The lower bound handed to the repository must be a day boundary, so
	// a date-only contract_end stored at midnight still matches the query.
	suite.mockClientRepo.On("FindClientsWithContractEndingBetween", ctx, "org-1",
		mock.MatchedBy(func(from time.Time) bool {
			return from.Hour() == 0 && from.Minute() == 0 && from.Second() == 0 && from.Nanosecond() == 0
		}),
		mock.AnythingOfType("time.Time"),
	).Return(clients, nil).Once()

	entries, err := suite.service.ChurnRadar(ctx, suite.requester, 60)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(0, entries[0].DaysUntilEnd)
	suite.Equal(domain.RiskCritical, entries[0].RiskLevel)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestChurnRadar_ExcludesPastContracts() {
	ctx := context.Background()
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	clients := []domain.Client{
		{ClientID: "c-1", Name: "Gone Co", ContractEnd: &yesterday},
		{ClientID: "c-2", Name: "Open Co"}, // no end date
	}
	suite.mockClientRepo.On("FindClientsWithContractEndingBetween", ctx, "org-1", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(clients, nil).Once()

	entries, err := suite.service.ChurnRadar(ctx, suite.requester, 60)

	suite.Require().NoError(err)
	suite.Empty(entries, "the radar is forward-looking only")
}

// --- Team workload ---

func (suite *AnalyticsServiceTestSuite) TestTeamWorkload_UtilizationAndCounts() {
	ctx := context.Background()

	profiles := []domain.Profile{
		{ProfileID: "p-1", Name: "Ana", WeeklyCapacityHours: 40},
		{ProfileID: "p-2", Name: "Bruno", WeeklyCapacityHours: 40},
		{ProfileID: "p-3", Name: "Carla"}, // no declared capacity, defaults to 40
	}
	tasks := []domain.Task{
		{TaskID: "t-1", AssigneeID: "p-1", ProjectID: "proj-1", Title: "Design", EstimatedTimeMinutes: 45 * 60, Status: domain.TaskInProgress},
		{TaskID: "t-2", AssigneeID: "p-2", ProjectID: "proj-1", Title: "Review", EstimatedTimeMinutes: 34 * 60, Status: domain.TaskTodo},
	}
	projects := []domain.Project{{ProjectID: "proj-1", ClientID: "c-1", Name: "Rebrand"}}

	suite.mockProfileRepo.On("FindProfilesRedacted", ctx, "org-1").Return(profiles, nil).Once()
	suite.mockTaskRepo.On("FindActiveTasks", ctx, "org-1").Return(tasks, nil).Once()
	suite.mockProjectRepo.On("FindProjects", ctx, "org-1").Return(projects, nil).Once()

	report, err := suite.service.TeamWorkload(ctx, suite.requester)

	suite.Require().NoError(err)
	suite.Require().Len(report.Members, 3)

	// Sorted by utilization descending: 113% > 85% > 0%.
	suite.Equal("p-1", report.Members[0].ProfileID)
	suite.Equal(113, report.Members[0].UtilizationPercent)
	suite.Equal(domain.UtilizationOverloaded, report.Members[0].Status)
	suite.Equal("Rebrand", report.Members[0].Tasks[0].ProjectName)

	suite.Equal("p-2", report.Members[1].ProfileID)
	suite.Equal(85, report.Members[1].UtilizationPercent)
	suite.Equal(domain.UtilizationAttention, report.Members[1].Status)

	suite.Equal("p-3", report.Members[2].ProfileID)
	suite.Equal(40, report.Members[2].WeeklyCapacityHours)
	suite.Equal(0, report.Members[2].UtilizationPercent)
	suite.Equal(domain.UtilizationHealthy, report.Members[2].Status)
	suite.Empty(report.Members[2].Tasks)

	suite.Equal(1, report.OverloadedCount)
	suite.Equal(1, report.AttentionCount)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func (suite *AnalyticsServiceTestSuite) TestTeamWorkload_SecondCallServedFromCache() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfilesRedacted", ctx, "org-1").Return([]domain.Profile{}, nil).Once()
	suite.mockTaskRepo.On("FindActiveTasks", ctx, "org-1").Return([]domain.Task{}, nil).Once()
	suite.mockProjectRepo.On("FindProjects", ctx, "org-1").Return([]domain.Project{}, nil).Once()

	_, err := suite.service.TeamWorkload(ctx, suite.requester)
	suite.Require().NoError(err)
	_, err = suite.service.TeamWorkload(ctx, suite.requester)
	suite.Require().NoError(err)
	suite.mockTaskRepo.AssertExpectations(suite.T())
}

func TestAnalyticsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
