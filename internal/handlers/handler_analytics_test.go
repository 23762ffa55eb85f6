package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agenciahub/agency_ops_app/internal/apperrors"
	"github.com/agenciahub/agency_ops_app/internal/core/domain"
	"github.com/agenciahub/agency_ops_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AnalyticsService ---

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) DRE(ctx context.Context, requester domain.Requester, from, to time.Time) (*domain.DREReport, error) {
	args := m.Called(ctx, requester, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DREReport), args.Error(1)
}

func (m *MockAnalyticsService) ClientProfitability(ctx context.Context, requester domain.Requester) ([]domain.ClientProfitability, error) {
	args := m.Called(ctx, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientProfitability), args.Error(1)
}

func (m *MockAnalyticsService) SalesPerformance(ctx context.Context, requester domain.Requester, from, to time.Time) ([]domain.SalesPerformanceRow, error) {
	args := m.Called(ctx, requester, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesPerformanceRow), args.Error(1)
}

func (m *MockAnalyticsService) ChurnRadar(ctx context.Context, requester domain.Requester, horizonDays int) ([]domain.ChurnRiskClient, error) {
	args := m.Called(ctx, requester, horizonDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChurnRiskClient), args.Error(1)
}

func (m *MockAnalyticsService) TeamWorkload(ctx context.Context, requester domain.Requester) (*domain.TeamWorkloadReport, error) {
	args := m.Called(ctx, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamWorkloadReport), args.Error(1)
}

// --- Mock DealService ---

type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) CreateDeal(ctx context.Context, requester domain.Requester, req dto.CreateDealRequest) (*domain.Deal, error) {
	args := m.Called(ctx, requester, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) GetDealByID(ctx context.Context, requester domain.Requester, dealID string) (*domain.Deal, error) {
	args := m.Called(ctx, requester, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) ListDeals(ctx context.Context, requester domain.Requester, params dto.ListDealsParams) ([]domain.Deal, error) {
	args := m.Called(ctx, requester, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealService) UpdateDeal(ctx context.Context, requester domain.Requester, dealID string, req dto.UpdateDealRequest) (*domain.Deal, error) {
	args := m.Called(ctx, requester, dealID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) MoveDealStage(ctx context.Context, requester domain.Requester, dealID string, stage domain.DealStage) (*domain.Deal, error) {
	args := m.Called(ctx, requester, dealID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealService) DeleteDeal(ctx context.Context, requester domain.Requester, dealID string) error {
	args := m.Called(ctx, requester, dealID)
	return args.Error(0)
}

func (m *MockDealService) PipelineSummary(ctx context.Context, requester domain.Requester) (*domain.PipelineSummary, error) {
	args := m.Called(ctx, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineSummary), args.Error(1)
}

// --- Test Suite ---

type AnalyticsHandlerTestSuite struct {
	suite.Suite
	mockService *MockAnalyticsService
	mockDealSvc *MockDealService
	router      *gin.Engine
	requester   domain.Requester
}

func (suite *AnalyticsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockAnalyticsService)
	suite.mockDealSvc = new(MockDealService)
	suite.requester = domain.Requester{
		ProfileID:      "profile-1",
		OrganizationID: "org-1",
		Roles:          []string{"admin"},
	}

	suite.router = gin.New()
	authed := suite.router.Group("", func(c *gin.Context) {
		c.Set("requester", suite.requester)
		c.Next()
	})
	registerAnalyticsRoutes(authed.Group(""), suite.mockService, suite.mockDealSvc)
}

func (suite *AnalyticsHandlerTestSuite) serve(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AnalyticsHandlerTestSuite) TestDRE_ExplicitMonth() {
	expected := &domain.DREReport{ReceitaBrutaCents: 500000, LucroLiquidoCents: 350000, MargemLiquidaPercent: 70.0, HasData: true}
	suite.mockService.On("DRE", mock.Anything, suite.requester,
		mock.MatchedBy(func(from time.Time) bool { return from.Month() == time.March && from.Day() == 1 }),
		mock.MatchedBy(func(to time.Time) bool { return to.Month() == time.March && to.Day() == 31 }),
	).Return(expected, nil).Once()

	w := suite.serve(http.MethodGet, "/analytics/dre?month=2025-03")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DREResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(500000), resp.ReceitaBrutaCents)
	suite.Equal(70.0, resp.MargemLiquidaPercent)
	suite.True(resp.HasData)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AnalyticsHandlerTestSuite) TestDRE_InvalidMonth() {
	w := suite.serve(http.MethodGet, "/analytics/dre?month=march")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "DRE", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AnalyticsHandlerTestSuite) TestDRE_InvertedRange() {
	w := suite.serve(http.MethodGet, "/analytics/dre?from=2025-03-31&to=2025-03-01")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AnalyticsHandlerTestSuite) TestDRE_DefaultsToCurrentMonth() {
	now := time.Now()
	suite.mockService.On("DRE", mock.Anything, suite.requester,
		mock.MatchedBy(func(from time.Time) bool { return from.Month() == now.Month() && from.Day() == 1 }),
		mock.AnythingOfType("time.Time"),
	).Return(&domain.DREReport{}, nil).Once()

	w := suite.serve(http.MethodGet, "/analytics/dre")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AnalyticsHandlerTestSuite) TestChurnRadar_DefaultHorizon() {
	suite.mockService.On("ChurnRadar", mock.Anything, suite.requester, 60).
		Return([]domain.ChurnRiskClient{{ClientID: "c-1", RiskLevel: domain.RiskCritical}}, nil).Once()

	w := suite.serve(http.MethodGet, "/analytics/churn-radar")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ChurnRadarResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(60, resp.HorizonDays)
	suite.Require().Len(resp.Clients, 1)
	suite.Equal(domain.RiskCritical, resp.Clients[0].RiskLevel)
}

func (suite *AnalyticsHandlerTestSuite) TestChurnRadar_InvalidHorizon() {
	w := suite.serve(http.MethodGet, "/analytics/churn-radar?horizonDays=-5")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ChurnRadar", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AnalyticsHandlerTestSuite) TestWorkload() {
	report := &domain.TeamWorkloadReport{
		Members:         []domain.MemberWorkload{{ProfileID: "p-1", UtilizationPercent: 113, Status: domain.UtilizationOverloaded}},
		OverloadedCount: 1,
	}
	suite.mockService.On("TeamWorkload", mock.Anything, suite.requester).Return(report, nil).Once()

	w := suite.serve(http.MethodGet, "/analytics/workload")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WorkloadResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.OverloadedCount)
	suite.Require().Len(resp.Members, 1)
	suite.Equal(113, resp.Members[0].UtilizationPercent)
}

func (suite *AnalyticsHandlerTestSuite) TestProfitability_ServiceError() {
	suite.mockService.On("ClientProfitability", mock.Anything, suite.requester).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/analytics/profitability")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AnalyticsHandlerTestSuite) TestDashboard_ComposesAllReports() {
	suite.mockService.On("DRE", mock.Anything, suite.requester, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(&domain.DREReport{ReceitaBrutaCents: 100000, HasData: true}, nil).Once()
	suite.mockService.On("ClientProfitability", mock.Anything, suite.requester).
		Return([]domain.ClientProfitability{{ClientID: "c-1"}}, nil).Once()
	suite.mockService.On("SalesPerformance", mock.Anything, suite.requester, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.SalesPerformanceRow{}, nil).Once()
	suite.mockService.On("ChurnRadar", mock.Anything, suite.requester, 60).
		Return([]domain.ChurnRiskClient{}, nil).Once()
	suite.mockService.On("TeamWorkload", mock.Anything, suite.requester).
		Return(&domain.TeamWorkloadReport{}, nil).Once()
	suite.mockDealSvc.On("PipelineSummary", mock.Anything, suite.requester).
		Return(&domain.PipelineSummary{OpenDealCount: 3, WeightedValueCents: 390000}, nil).Once()

	w := suite.serve(http.MethodGet, "/analytics/dashboard")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(100000), resp.DRE.ReceitaBrutaCents)
	suite.Require().Len(resp.Profitability, 1)
	suite.Equal(3, resp.Pipeline.OpenDealCount)
	suite.Equal(int64(390000), resp.Pipeline.WeightedValueCents)
	suite.mockService.AssertExpectations(suite.T())
	suite.mockDealSvc.AssertExpectations(suite.T())
}

func (suite *AnalyticsHandlerTestSuite) TestDashboard_FailsWhenAnyReportFails() {
	suite.mockService.On("DRE", mock.Anything, suite.requester, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(&domain.DREReport{}, nil).Maybe()
	suite.mockService.On("ClientProfitability", mock.Anything, suite.requester).
		Return([]domain.ClientProfitability{}, nil).Maybe()
	suite.mockService.On("SalesPerformance", mock.Anything, suite.requester, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.SalesPerformanceRow{}, nil).Maybe()
	suite.mockService.On("ChurnRadar", mock.Anything, suite.requester, 60).
		Return([]domain.ChurnRiskClient{}, nil).Maybe()
	suite.mockService.On("TeamWorkload", mock.Anything, suite.requester).
		Return(nil, apperrors.ErrForbidden).Once()
	suite.mockDealSvc.On("PipelineSummary", mock.Anything, suite.requester).
		Return(&domain.PipelineSummary{}, nil).Maybe()

	w := suite.serve(http.MethodGet, "/analytics/dashboard")

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestAnalyticsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerTestSuite))
}
